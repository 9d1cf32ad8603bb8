package server

import (
	"context"
	"log"
	"time"

	"backend-topout/internal/auth"
	"backend-topout/internal/config"
	"backend-topout/internal/db"
	"backend-topout/internal/remote"
	"backend-topout/internal/sensors"
	"backend-topout/internal/sessions"
	"backend-topout/internal/stream"
	syncengine "backend-topout/internal/sync"
	"backend-topout/internal/tracking"
	"backend-topout/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, pool *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     pool,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.PairingCode))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	if s.DB == nil {
		log.Printf("no database connection, session routes disabled")
		return
	}

	sessionStore := sessions.NewStore(s.DB)
	pointStore := tracking.NewPointStore(s.DB)
	userStore := users.NewStore(s.DB)
	remoteClient := remote.NewClient(s.Cfg.RemoteBaseURL, s.Cfg.RemoteAPIKey)

	userID := bootstrap(s.DB, userStore)

	userService := users.NewService(userStore, remoteClient)
	sessionService := sessions.NewService(sessionStore, pointStore, remoteClient)
	manager := tracking.NewManager(sessionStore, pointStore, remoteClient,
		newProvider(s.Cfg), s.Stream, userService, intervalsFrom(s.Cfg), userID)
	engine := syncengine.NewEngine(sessionStore, pointStore, userStore, remoteClient)

	users.RegisterRoutes(s.App.Group("/user"), userService, jwtMiddleware)
	sessions.RegisterRoutes(s.App.Group("/sessions"), sessionService, jwtMiddleware, func() string { return userID })
	tracking.RegisterRoutes(s.App.Group("/live"), manager, jwtMiddleware)
	syncengine.RegisterRoutes(s.App.Group("/sync"), engine, jwtMiddleware)
}

// bootstrap applies the schema and performs the anonymous sign-in,
// returning the singleton profile id. Failures are logged, not fatal:
// the device must come up even when the local store is briefly sick.
func bootstrap(pool *pgxpool.Pool, userStore *users.Store) string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Printf("schema setup failed: %v", err)
		return ""
	}
	user, err := userStore.EnsureAnonymous(ctx)
	if err != nil {
		log.Printf("anonymous sign-in failed: %v", err)
		return ""
	}
	return user.ID
}

// newProvider selects the sensor backend. Only the simulator exists
// today; an unknown mode falls back to it with a log line rather than
// refusing to start. GPS altitudes are ellipsoid-referenced at the
// chip, so every provider gets the mean-sea-level correction.
func newProvider(cfg config.Config) sensors.Provider {
	if cfg.SensorMode != "simulated" {
		log.Printf("sensor mode %q not available, using simulator", cfg.SensorMode)
	}
	return sensors.MSLCorrected(sensors.NewSimulator(time.Now().UnixNano()))
}

func intervalsFrom(cfg config.Config) sensors.Intervals {
	return sensors.Intervals{
		Tick:  time.Duration(cfg.TickMS) * time.Millisecond,
		Accel: time.Duration(cfg.AccelPollMS) * time.Millisecond,
		Baro:  time.Duration(cfg.BaroPollMS) * time.Millisecond,
		GPS:   time.Duration(cfg.GPSPollMS) * time.Millisecond,
	}
}
