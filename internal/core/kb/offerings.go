package kb

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// OfferingInput is the payload for AddOffering. IsAvailable nil means available.
type OfferingInput struct {
	Name        string
	Category    string
	Description *string
	Price       *float64
	Duration    *int
	IsAvailable *bool
}

func (s *Store) ListOfferings(ctx context.Context, customerID uint, availableOnly bool) ([]models.BusinessService, error) {
	query := s.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var offerings []models.BusinessService
	if err := query.Order("id").Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

// SearchOfferings matches name, description and category, case-insensitively.
func (s *Store) SearchOfferings(ctx context.Context, customerID uint, query string) ([]models.BusinessService, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is required")
	}

	var rows []models.BusinessService
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search offerings: %w", err)
	}

	offerings := make([]models.BusinessService, 0, len(rows))
	for _, o := range rows {
		description := ""
		if o.Description != nil {
			description = *o.Description
		}
		if containsFold(query, o.Name, description, o.Category) {
			offerings = append(offerings, o)
		}
	}
	return offerings, nil
}

func (s *Store) AddOffering(ctx context.Context, customerID uint, in OfferingInput) (*models.BusinessService, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("offering name is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, invalid("price must not be negative")
	}
	if in.Duration != nil && *in.Duration < 0 {
		return nil, invalid("duration must not be negative")
	}

	offering := models.BusinessService{
		CustomerID:  customerID,
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
	}
	if err := s.db.WithContext(ctx).Create(&offering).Error; err != nil {
		return nil, fmt.Errorf("failed to add offering: %w", translate(err))
	}
	return &offering, nil
}

// SetOfferingPrice updates the first available offering whose name matches
// exactly (case-sensitive).
func (s *Store) SetOfferingPrice(ctx context.Context, customerID uint, name string, price float64) (*models.BusinessService, error) {
	if price < 0 {
		return nil, invalid("price must not be negative")
	}

	var offering models.BusinessService
	err := s.updateOffering(ctx, customerID, name, true, &offering, map[string]interface{}{"price": price})
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

// SetOfferingAvailability toggles availability of the first offering with
// the exact name, available or not.
func (s *Store) SetOfferingAvailability(ctx context.Context, customerID uint, name string, available bool) (*models.BusinessService, error) {
	var offering models.BusinessService
	err := s.updateOffering(ctx, customerID, name, false, &offering, map[string]interface{}{"is_available": available})
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (s *Store) updateOffering(ctx context.Context, customerID uint, name string, availableOnly bool, out *models.BusinessService, updates map[string]interface{}) error {
	unlock := s.locks.lock(fmt.Sprintf("offering:%d:%s", customerID, name))
	defer unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("customer_id = ? AND name = ?", customerID, name)
		if availableOnly {
			query = query.Where("is_available = ?", true)
		}
		if err := query.Order("id").First(out).Error; err != nil {
			return err
		}
		if err := tx.Model(out).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(out, out.ID).Error
	})
	if err != nil {
		err = translate(err)
		if err == ErrNotFound {
			return fmt.Errorf("offering %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to update offering: %w", err)
	}
	return nil
}
