package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/app"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/handlers"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/chatherine-be/cmd/api/docs"
)

// @title Chatherine API
// @version 1.0
// @description Business chat assistant with tool calling over a per-customer knowledge base
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@chatherine.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	log.Info().Str("port", cfg.Port).Str("provider", cfg.LLMProvider).Msg("🚀 Starting chatherine api")

	db := database.NewDB(cfg.DBDriver, cfg.DatabaseURL)

	core, err := app.New(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ failed to build app")
	}
	defer core.Close()

	if err := core.StartBackground(utils.Component("retention")); err != nil {
		log.Fatal().Err(err).Msg("❌ failed to start background jobs")
	}

	server := fiber.New(fiber.Config{
		AppName: "Chatherine API",
	})

	// Middleware
	server.Use(cors.New())

	// Swagger
	server.Get("/swagger/*", swagger.HandlerDefault)

	handlers.Register(server, handlers.Handlers{
		Health:   handlers.NewHealthHandler(core.Tools, cfg.LLMProvider),
		Chat:     handlers.NewChatHandler(core.Engine),
		KB:       handlers.NewKBHandler(core.Store),
		Activity: handlers.NewActivityHandler(core.Activity),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("🛑 shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Msgf("✅ api running at :%s", cfg.Port)
	log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	if err := server.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("❌ server stopped")
	}
}
