package tracking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type startRequest struct {
	Title string `json:"title"`
}

func RegisterRoutes(r fiber.Router, m *Manager, authMiddleware fiber.Handler) {
	r.Post("/start", authMiddleware, func(c *fiber.Ctx) error {
		var req startRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		session, err := m.Start(c.Context(), req.Title)
		if err != nil {
			if errors.Is(err, ErrSessionActive) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(session)
	})

	r.Post("/pause", authMiddleware, func(c *fiber.Ctx) error {
		m.Pause()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/resume", authMiddleware, func(c *fiber.Ctx) error {
		m.Resume()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/finish", authMiddleware, func(c *fiber.Ctx) error {
		session, points, err := m.Finish(c.Context())
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if points == nil {
			points = []TrackPoint{}
		}
		return c.JSON(fiber.Map{"session": session, "points": points})
	})

	r.Post("/cancel", authMiddleware, func(c *fiber.Ctx) error {
		if err := m.Cancel(c.Context()); err != nil {
			if errors.Is(err, ErrNoSession) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/metrics", func(c *fiber.Ctx) error {
		sessionID, metrics, ok := m.Latest()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no active session")
		}
		return c.JSON(fiber.Map{"session_id": sessionID, "metrics": metrics})
	})
}
