package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nexus/godiscord/config"
	"github.com/nexus/godiscord/internal/discord"
	"github.com/nexus/godiscord/internal/handlers"
	"github.com/nexus/godiscord/internal/middleware"
)

func NewServer(cfg *config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName: "godiscord interactions endpoint",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, apikey",
	}))
	app.Use(logger.New())

	db, err := sqlx.Connect("sqlite3", cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := handlers.NewSubmissionStore(db)
	if err := store.Init(); err != nil {
		return nil, err
	}

	rest := discord.NewClient(cfg.DiscordAppID, cfg.DiscordBotToken)
	if cfg.DiscordAPIBase != "" {
		rest.BaseURL = cfg.DiscordAPIBase
	}
	service := discord.NewService(rest)

	interactionHandler := handlers.NewInteractionHandler(store)
	submissionHandler := handlers.NewSubmissionHandler(store, service)

	// === DISCORD ===
	app.Post("/interactions", middleware.VerifySignature(cfg), interactionHandler.Handle)

	v1 := app.Group("/v1")
	v1.Use(middleware.Protected(cfg))

	// === SUBMISSIONS ===
	v1.Get("/submissions", submissionHandler.List)
	v1.Get("/submissions/:id", submissionHandler.Get)
	v1.Get("/stats", submissionHandler.Stats)

	// === RESPONSE OPERATIONS ===
	v1.Get("/submissions/:id/response", submissionHandler.GetResponse)
	v1.Post("/submissions/:id/respond", submissionHandler.Respond)
	v1.Patch("/submissions/:id/response", submissionHandler.EditResponse)
	v1.Delete("/submissions/:id/response", submissionHandler.DeleteResponse)
	v1.Post("/submissions/:id/defer", submissionHandler.Defer)

	// === FOLLOWUPS ===
	v1.Post("/submissions/:id/followups", submissionHandler.CreateFollowup)
	v1.Patch("/submissions/:id/followups/:message_id", submissionHandler.EditFollowup)
	v1.Delete("/submissions/:id/followups/:message_id", submissionHandler.DeleteFollowup)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app, nil
}
