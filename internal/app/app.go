// Package app wires the chat stack shared by every entrypoint.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/activity"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/agent"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/tools"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/utils"
)

type App struct {
	Config    *config.Config
	DB        *database.DB
	Store     *kb.Store
	Tools     *tools.Registry
	LLM       *llm.Service
	Activity  *activity.Log
	Engine    *agent.Engine
	Scheduler *scheduler.Scheduler
}

// ProviderConfig maps environment settings onto the gateway factory.
func ProviderConfig(cfg *config.Config) llm.ProviderConfig {
	return llm.ProviderConfig{
		Type:        llm.ProviderType(cfg.LLMProvider),
		OpenAIKey:   cfg.OpenAIKey,
		GeminiKey:   cfg.GeminiKey,
		GroqKey:     cfg.GroqKey,
		DeepSeekKey: cfg.DeepSeekKey,
		ClaudeKey:   cfg.ClaudeKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
	}
}

// New builds the components on top of an open database.
func New(cfg *config.Config, db *database.DB) (*App, error) {
	store := kb.NewStore(db.GORM, utils.Component("kb"))

	registry, err := tools.NewRegistry(store, utils.Component("tools"))
	if err != nil {
		return nil, fmt.Errorf("tool catalogue: %w", err)
	}

	llmService, err := llm.NewService(ProviderConfig(cfg), utils.Component("llm"))
	if err != nil {
		return nil, err
	}

	actLog := activity.NewLog(db.GORM, utils.Component("activity"))

	engine := agent.NewEngine(agent.Config{
		Gateways:        llmService,
		Tools:           registry,
		Businesses:      store,
		ConversationLog: actLog,
		Logger:          utils.Component("agent"),
		Timeout:         cfg.LLMTimeout,
	})

	return &App{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Tools:     registry,
		LLM:       llmService,
		Activity:  actLog,
		Engine:    engine,
		Scheduler: scheduler.New(log.Logger),
	}, nil
}

// StartBackground schedules activity log retention when it is enabled.
func (a *App) StartBackground(logger zerolog.Logger) error {
	if a.Config.ActivityRetentionDays <= 0 {
		return nil
	}
	retention := time.Duration(a.Config.ActivityRetentionDays) * 24 * time.Hour
	job := scheduler.RetentionJob(a.Activity, retention, logger)
	if err := a.Scheduler.Add("activity-retention", a.Config.ActivityPruneSchedule, job); err != nil {
		return fmt.Errorf("activity retention: %w", err)
	}
	a.Scheduler.Start()
	logger.Info().
		Int("days", a.Config.ActivityRetentionDays).
		Str("schedule", a.Config.ActivityPruneSchedule).
		Msg("⏰ activity retention scheduled")
	return nil
}

// Close stops background jobs and the database.
func (a *App) Close() {
	a.Scheduler.Stop()
	if err := a.DB.Close(); err != nil {
		utils.LogError("failed to close database", err, nil)
	}
}
