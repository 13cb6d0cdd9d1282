package kb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

const dateLayout = "2006-01-02"

// Weekdays indexes day names by DayOfWeek (0 = Monday).
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseWeekday accepts a day name, a three-letter abbreviation or a 0-6 index.
func ParseWeekday(day string) (int, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	for i, name := range Weekdays {
		lower := strings.ToLower(name)
		if day == lower || day == lower[:3] {
			return i, nil
		}
	}
	if len(day) == 1 && day[0] >= '0' && day[0] <= '6' {
		return int(day[0] - '0'), nil
	}
	return 0, invalid("unknown day %q", day)
}

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(value string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", invalid("date %q must be YYYY-MM-DD", value)
	}
	return t.Format(dateLayout), nil
}

// ListAppointments returns the tenant's appointments, optionally for one date.
func (s *Store) ListAppointments(ctx context.Context, customerID uint, date string) ([]models.Appointment, error) {
	query := s.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if date != "" {
		d, err := ParseDate(date)
		if err != nil {
			return nil, err
		}
		query = query.Where("date = ?", d)
	}

	var appointments []models.Appointment
	if err := query.Order(`"date", "time"`).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Store) ListBusinessHours(ctx context.Context, customerID uint) ([]models.BusinessHours, error) {
	var hours []models.BusinessHours
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("day_of_week").
		Find(&hours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list business hours: %w", err)
	}
	return hours, nil
}

// HoursInput updates one weekday. Nil fields keep the stored value.
type HoursInput struct {
	DayOfWeek int
	OpenTime  *string
	CloseTime *string
	IsClosed  *bool
}

// UpsertBusinessHours writes the entry for (customer, day), creating it if needed.
func (s *Store) UpsertBusinessHours(ctx context.Context, customerID uint, in HoursInput) (*models.BusinessHours, error) {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return nil, invalid("day_of_week must be between 0 and 6")
	}
	for _, v := range []*string{in.OpenTime, in.CloseTime} {
		if v != nil {
			if _, err := time.Parse("15:04", *v); err != nil {
				return nil, invalid("time %q must be HH:MM", *v)
			}
		}
	}

	unlock := s.locks.lock(fmt.Sprintf("hours:%d:%d", customerID, in.DayOfWeek))
	defer unlock()

	var entry models.BusinessHours
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("customer_id = ? AND day_of_week = ?", customerID, in.DayOfWeek).First(&entry).Error
		if err != nil && translate(err) != ErrNotFound {
			return err
		}
		if err != nil {
			entry = models.BusinessHours{CustomerID: customerID, DayOfWeek: in.DayOfWeek}
		}

		if in.OpenTime != nil {
			entry.OpenTime = *in.OpenTime
		}
		if in.CloseTime != nil {
			entry.CloseTime = *in.CloseTime
		}
		if in.IsClosed != nil {
			entry.IsClosed = *in.IsClosed
		}
		return tx.Save(&entry).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert business hours: %w", translate(err))
	}
	return &entry, nil
}

// RevenueSummary aggregates paid invoices over a date range.
type RevenueSummary struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Total    float64 `json:"total"`
	Invoices int64   `json:"invoices"`
}

// Revenue sums total_amount of paid invoices with created_date in [start, end).
func (s *Store) Revenue(ctx context.Context, customerID uint, start, end string) (*RevenueSummary, error) {
	start, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	end, err = ParseDate(end)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, invalid("end date %s is before start date %s", end, start)
	}

	var row struct {
		Total float64
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&models.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0) AS total, COUNT(*) AS count").
		Where("customer_id = ? AND status = ? AND created_date >= ? AND created_date < ?",
			customerID, models.InvoicePaid, start, end).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	return &RevenueSummary{Start: start, End: end, Total: row.Total, Invoices: row.Count}, nil
}

func (s *Store) ListInventory(ctx context.Context, customerID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("name").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// RecordUnanswered stores a question nothing could answer as pending.
func (s *Store) RecordUnanswered(ctx context.Context, customerID uint, question string) (*models.UnansweredQuestion, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalid("question is required")
	}

	q := models.UnansweredQuestion{
		CustomerID: customerID,
		Question:   question,
		Timestamp:  time.Now().UTC(),
		Status:     models.QuestionPending,
	}
	if err := s.db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, fmt.Errorf("failed to record question: %w", translate(err))
	}
	return &q, nil
}

// ListUnanswered returns questions newest first. An empty status returns all.
func (s *Store) ListUnanswered(ctx context.Context, customerID uint, status string) ([]models.UnansweredQuestion, error) {
	query := s.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var questions []models.UnansweredQuestion
	if err := query.Order("timestamp DESC, id DESC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// AnswerUnanswered marks a question answered (or ignored when response is
// empty) on the owner's behalf.
func (s *Store) AnswerUnanswered(ctx context.Context, customerID, questionID uint, response string) (*models.UnansweredQuestion, error) {
	var q models.UnansweredQuestion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ? AND id = ?", customerID, questionID).First(&q).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{"status": models.QuestionIgnored}
		if response = strings.TrimSpace(response); response != "" {
			updates["status"] = models.QuestionAnswered
			updates["response"] = response
		}
		if err := tx.Model(&q).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&q, q.ID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", questionID, translate(err))
	}
	return &q, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *Store) GetCustomer(ctx context.Context, customerID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, translate(err))
	}
	return &customer, nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return invalid("customer name is required")
	}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", translate(err))
	}
	return nil
}
