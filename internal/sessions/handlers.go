package sessions

import "github.com/gofiber/fiber/v2"

type titleRequest struct {
	Title string `json:"title"`
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler, userID func() string) {
	r.Get("/", func(c *fiber.Ctx) error {
		list, err := svc.List(c.Context(), userID())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if list == nil {
			list = []Session{}
		}
		return c.JSON(list)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		session, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(session)
	})

	r.Patch("/:id/title", authMiddleware, func(c *fiber.Ctx) error {
		var req titleRequest
		if err := c.BodyParser(&req); err != nil || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		session, err := svc.UpdateTitle(c.Context(), c.Params("id"), req.Title)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(session)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
