package main

import (
	"context"
	"flag"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/app"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/mcpserver"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/utils"
)

// Serves the business tools over stdio. Stdout carries the protocol, so
// every log line goes to stderr and gorm logging is silenced.
func main() {
	var customerID uint
	flag.UintVar(&customerID, "customer", 0, "Customer (business) whose tools are served")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger("production", cfg.LogLevel)

	if customerID == 0 {
		customerID = cfg.WhatsAppCustomerID
	}
	if customerID == 0 {
		log.Fatal().Msg("❌ -customer is required")
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, logger.Silent)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to open database")
	}

	core, err := app.New(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ failed to build app")
	}
	defer core.Close()

	if _, err := core.Store.GetCustomer(context.Background(), customerID); err != nil {
		log.Fatal().Err(err).Uint("customer_id", customerID).Msg("❌ unknown customer")
	}

	s, err := mcpserver.New("chatherine", "1.0.0", core.Tools, customerID, utils.Component("mcp"))
	if err != nil {
		log.Fatal().Err(err).Msg("❌ failed to register tools")
	}

	log.Info().Uint("customer_id", customerID).Int("tools", len(core.Tools.Tools())).Msg("🔌 MCP server on stdio")
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("MCP server stopped")
	}
}
