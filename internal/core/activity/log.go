package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// ActionChat is the action recorded for each chat turn.
const ActionChat = "chat"

// Log is the append-only activity record.
type Log struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewLog(db *gorm.DB, logger zerolog.Logger) *Log {
	return &Log{
		db:     db,
		logger: logger.With().Str("component", "activity").Logger(),
		now:    time.Now,
	}
}

// Append writes one entry stamped with the current UTC time.
func (l *Log) Append(ctx context.Context, customerID *uint, action, details string) (*models.Log, error) {
	entry := models.Log{
		CustomerID: customerID,
		Timestamp:  l.now().UTC(),
		Action:     action,
		Details:    details,
	}
	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append log: %w", err)
	}
	return &entry, nil
}

// LogConversation records a chat exchange for the tenant.
func (l *Log) LogConversation(ctx context.Context, customerID uint, message, answer string) error {
	_, err := l.Append(ctx, &customerID, ActionChat, fmt.Sprintf("User: %s\nAssistant: %s", message, answer))
	return err
}

// List returns the tenant's newest entries first. limit <= 0 means 50.
func (l *Log) List(ctx context.Context, customerID uint, limit int) ([]models.Log, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.Log
	err := l.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}

// Prune deletes entries older than the cutoff and returns how many went.
func (l *Log) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res := l.db.WithContext(ctx).Where("timestamp < ?", olderThan.UTC()).Delete(&models.Log{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune logs: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		l.logger.Info().Int64("deleted", res.RowsAffected).Time("before", olderThan).Msg("🧹 pruned activity log")
	}
	return res.RowsAffected, nil
}
