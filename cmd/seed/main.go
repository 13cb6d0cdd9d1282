package main

import (
	"context"
	"errors"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/seed"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/utils"
)

func main() {
	var dataset string
	flag.StringVar(&dataset, "dataset", seed.DatasetRestaurant, "Dataset to load (restaurant, demo)")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	db := database.NewDB(cfg.DBDriver, cfg.DatabaseURL)
	defer db.Close()

	sum, err := seed.New(db.GORM, log.Logger).Run(context.Background(), dataset)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		utils.LogWarn("⚠️ dataset already present, nothing to do", map[string]interface{}{"dataset": dataset})
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("❌ seeding failed")
	}

	log.Info().
		Interface("customer_ids", sum.Customers).
		Int("facts", sum.Facts).
		Int("offerings", sum.Offerings).
		Int("hours", sum.Hours).
		Int("inventory", sum.Inventory).
		Int("appointments", sum.Appointments).
		Int("invoices", sum.Invoices).
		Msg("✅ seed completed")
}
