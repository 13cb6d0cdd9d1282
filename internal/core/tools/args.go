package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

// KnowledgeStore is the part of kb.Store the tools use.
type KnowledgeStore interface {
	ListFacts(ctx context.Context, customerID uint, publicOnly bool) ([]models.BusinessFact, error)
	SearchFacts(ctx context.Context, customerID uint, query string) ([]models.BusinessFact, error)
	UpsertFact(ctx context.Context, customerID uint, in kb.FactInput) (*models.BusinessFact, error)
	CreateFact(ctx context.Context, customerID uint, in kb.FactInput) (*models.BusinessFact, error)

	ListOfferings(ctx context.Context, customerID uint, availableOnly bool) ([]models.BusinessService, error)
	SearchOfferings(ctx context.Context, customerID uint, query string) ([]models.BusinessService, error)
	AddOffering(ctx context.Context, customerID uint, in kb.OfferingInput) (*models.BusinessService, error)
	SetOfferingPrice(ctx context.Context, customerID uint, name string, price float64) (*models.BusinessService, error)
	SetOfferingAvailability(ctx context.Context, customerID uint, name string, available bool) (*models.BusinessService, error)

	ListAppointments(ctx context.Context, customerID uint, date string) ([]models.Appointment, error)
	ListBusinessHours(ctx context.Context, customerID uint) ([]models.BusinessHours, error)
	UpsertBusinessHours(ctx context.Context, customerID uint, in kb.HoursInput) (*models.BusinessHours, error)
	Revenue(ctx context.Context, customerID uint, start, end string) (*kb.RevenueSummary, error)
	ListInventory(ctx context.Context, customerID uint) ([]models.InventoryItem, error)

	RecordUnanswered(ctx context.Context, customerID uint, question string) (*models.UnansweredQuestion, error)
	ListUnanswered(ctx context.Context, customerID uint, status string) ([]models.UnansweredQuestion, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// Number accepts a JSON number or a numeric string ("35", "35.0").
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%s is not a number", data)
	}
	*n = Number(f)
	return nil
}

// Flag accepts a JSON bool or a string such as "true", "yes" or "no".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s is not a boolean", data)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "open":
		*f = true
	case "false", "no", "n", "0", "closed":
		*f = false
	default:
		return fmt.Errorf("%q is not a boolean", s)
	}
	return nil
}

func (f *Flag) ptr() *bool {
	if f == nil {
		return nil
	}
	b := bool(*f)
	return &b
}

func (n *Number) floatPtr() *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}

func (n *Number) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func optString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

// Weekday accepts a day name ("Friday", "fri") or a 0-6 index, Monday first.
type Weekday int

func (d *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	idx, err := kb.ParseWeekday(s)
	if err != nil {
		return err
	}
	*d = Weekday(idx)
	return nil
}
