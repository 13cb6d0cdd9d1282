package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/app"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/whatsapp"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	log.Info().Str("env", cfg.Env).Uint("customer_id", cfg.WhatsAppCustomerID).Msg("Starting chatherine WhatsApp bot")

	db := database.NewDB(cfg.DBDriver, cfg.DatabaseURL)

	core, err := app.New(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build app")
	}
	defer core.Close()

	if cfg.WhatsAppCustomerID == 0 {
		log.Warn().Msg("WHATSAPP_CUSTOMER_ID not set, answering without business tools")
	} else if _, err := core.Store.GetCustomer(context.Background(), cfg.WhatsAppCustomerID); err != nil {
		log.Fatal().Err(err).Msg("WHATSAPP_CUSTOMER_ID does not match a customer")
	}

	if err := core.StartBackground(utils.Component("retention")); err != nil {
		log.Fatal().Err(err).Msg("Failed to start background jobs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := whatsapp.NewClient(cfg.WhatsAppStoreURL, log.Logger)
	if err := client.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect WhatsApp client")
	}
	defer client.Disconnect()

	bot := whatsapp.NewBot(core.Engine, client, whatsapp.BotConfig{
		CustomerID: cfg.WhatsAppCustomerID,
		Timeout:    3 * cfg.LLMTimeout,
		Logger:     log.Logger,
	})
	if err := client.Listen(bot.HandleEvent); err != nil {
		log.Error().Err(err).Msg("Failed to start listening")
		return
	}

	go client.KeepAlive(ctx, 60*time.Second)

	log.Info().Msg("✅ Bot is listening")
	<-ctx.Done()
	log.Info().Msg("Shutting down...")
	log.Info().Msg("Goodbye 👋")
}
