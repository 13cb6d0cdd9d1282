package kb

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// FactInput carries the writable fields of a fact. IsPublic nil means
// "public" on create and "unchanged" on update.
type FactInput struct {
	Title    string
	Content  string
	Category string
	IsPublic *bool
}

func (in FactInput) normalize() (FactInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" {
		return in, invalid("fact title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return in, invalid("fact content is required")
	}
	if in.Category == "" {
		in.Category = models.CategoryGeneral
	}
	return in, nil
}

func (s *Store) ListFacts(ctx context.Context, customerID uint, publicOnly bool) ([]models.BusinessFact, error) {
	query := s.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}

	var facts []models.BusinessFact
	if err := query.Order("id").Find(&facts).Error; err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	return facts, nil
}

// SearchFacts matches the query case-insensitively as a substring of the
// title, content or category.
func (s *Store) SearchFacts(ctx context.Context, customerID uint, query string) ([]models.BusinessFact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is required")
	}

	var rows []models.BusinessFact
	if err := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search facts: %w", err)
	}

	facts := make([]models.BusinessFact, 0, len(rows))
	for _, f := range rows {
		if containsFold(query, f.Title, f.Content, f.Category) {
			facts = append(facts, f)
		}
	}
	return facts, nil
}

// UpsertFact replaces the content of the fact with the same category and
// title, or creates it. Concurrent upserts of one key are serialized and the
// last writer wins.
func (s *Store) UpsertFact(ctx context.Context, customerID uint, in FactInput) (*models.BusinessFact, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(fmt.Sprintf("fact:%d:%s:%s", customerID, in.Category, in.Title))
	defer unlock()

	var fact models.BusinessFact
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("customer_id = ? AND category = ? AND title = ?", customerID, in.Category, in.Title).
			Order("id").
			First(&fact).Error
		if err != nil && translate(err) != ErrNotFound {
			return err
		}

		if err == nil {
			updates := map[string]interface{}{"content": in.Content}
			if in.IsPublic != nil {
				updates["is_public"] = *in.IsPublic
			}
			if err := tx.Model(&fact).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&fact, fact.ID).Error
		}

		fact = newFact(customerID, in)
		return tx.Create(&fact).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert fact: %w", translate(err))
	}

	s.logger.Debug().Uint("customer_id", customerID).Uint("fact_id", fact.ID).Str("title", fact.Title).Msg("fact upserted")
	return &fact, nil
}

// CreateFact always inserts a new fact, even if one with the same key exists.
func (s *Store) CreateFact(ctx context.Context, customerID uint, in FactInput) (*models.BusinessFact, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	fact := newFact(customerID, in)
	if err := s.db.WithContext(ctx).Create(&fact).Error; err != nil {
		return nil, fmt.Errorf("failed to create fact: %w", translate(err))
	}
	return &fact, nil
}

func newFact(customerID uint, in FactInput) models.BusinessFact {
	public := true
	if in.IsPublic != nil {
		public = *in.IsPublic
	}
	return models.BusinessFact{
		CustomerID: customerID,
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		IsPublic:   public,
	}
}
