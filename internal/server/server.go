package server

import (
	"backend-geogems/internal/config"
	"backend-geogems/internal/gem"
	"backend-geogems/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Server struct {
	App *fiber.App
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewServer(cfg config.Config, db *pgxpool.Pool) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App: app,
		Cfg: cfg,
		DB:  db,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": fiber.StatusOK, "message": "PONG"})
	})

	jwtMiddleware := user.JWTMiddleware(s.Cfg.JWTSecret)

	user.RegisterRoutes(s.App.Group("/auth"), user.NewService(s.Cfg.JWTSecret, s.DB))
	gem.RegisterRoutes(s.App, gem.NewService(s.DB), jwtMiddleware)
}
