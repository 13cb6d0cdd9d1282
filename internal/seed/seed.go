// Package seed loads demo businesses for local development.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

const (
	DatasetRestaurant = "restaurant"
	DatasetDemo       = "demo"
)

// ErrAlreadySeeded is returned when a dataset's first business exists.
var ErrAlreadySeeded = errors.New("dataset already seeded")

type Summary struct {
	Customers    []uint
	Facts        int
	Offerings    int
	Hours        int
	Inventory    int
	Appointments int
	Invoices     int
}

type Seeder struct {
	db     *gorm.DB
	logger zerolog.Logger
	now    func() time.Time
}

func New(db *gorm.DB, logger zerolog.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger.With().Str("component", "seed").Logger(),
		now:    time.Now,
	}
}

// Run loads one dataset in a single transaction.
func (s *Seeder) Run(ctx context.Context, dataset string) (*Summary, error) {
	var load func(tx *gorm.DB, sum *Summary) error
	var marker string
	switch dataset {
	case DatasetRestaurant:
		load, marker = s.loadRestaurant, restaurant.BusinessName
	case DatasetDemo:
		load, marker = s.loadDemo, demoCustomers[0].BusinessName
	default:
		return nil, fmt.Errorf("unknown dataset %q (use %s or %s)", dataset, DatasetRestaurant, DatasetDemo)
	}

	sum := &Summary{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Customer{}).Where("business_name = ?", marker).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%s: %w", dataset, ErrAlreadySeeded)
		}
		return load(tx, sum)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("dataset", dataset).
		Interface("customers", sum.Customers).
		Int("facts", sum.Facts).
		Int("offerings", sum.Offerings).
		Msg("🌱 dataset loaded")
	return sum, nil
}

func (s *Seeder) loadRestaurant(tx *gorm.DB, sum *Summary) error {
	customer := restaurant
	if err := tx.Create(&customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	sum.Customers = append(sum.Customers, customer.ID)

	facts := make([]models.BusinessFact, 0, len(restaurantFacts))
	for _, f := range restaurantFacts {
		facts = append(facts, models.BusinessFact{
			CustomerID: customer.ID,
			Category:   f.category,
			Title:      f.title,
			Content:    f.content,
			IsPublic:   true,
		})
	}
	if err := tx.Create(&facts).Error; err != nil {
		return fmt.Errorf("failed to create facts: %w", err)
	}
	sum.Facts = len(facts)

	offerings := make([]models.BusinessService, 0, len(menu))
	for _, o := range menu {
		offerings = append(offerings, o.model(customer.ID))
	}
	if err := tx.Create(&offerings).Error; err != nil {
		return fmt.Errorf("failed to create offerings: %w", err)
	}
	sum.Offerings = len(offerings)

	hours := make([]models.BusinessHours, 0, len(restaurantHours))
	for day, h := range restaurantHours {
		hours = append(hours, models.BusinessHours{CustomerID: customer.ID, DayOfWeek: day, OpenTime: h[0], CloseTime: h[1]})
	}
	if err := tx.Create(&hours).Error; err != nil {
		return fmt.Errorf("failed to create hours: %w", err)
	}
	sum.Hours = len(hours)

	return s.logSetup(tx, customer.ID, "Restaurant data populated with menu, hours, and business information")
}

func (s *Seeder) loadDemo(tx *gorm.DB, sum *Summary) error {
	customers := make([]models.Customer, len(demoCustomers))
	copy(customers, demoCustomers)
	if err := tx.Create(&customers).Error; err != nil {
		return fmt.Errorf("failed to create customers: %w", err)
	}
	for _, c := range customers {
		sum.Customers = append(sum.Customers, c.ID)
	}

	services := make([]models.BusinessService, 0, len(demoServices))
	for _, d := range demoServices {
		services = append(services, d.model(customers[d.owner].ID))
	}
	if err := tx.Create(&services).Error; err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}
	sum.Offerings = len(services)

	stock := make([]models.InventoryItem, 0, len(demoInventory))
	for _, d := range demoInventory {
		stock = append(stock, models.InventoryItem{
			CustomerID: customers[d.owner].ID,
			Name:       d.name,
			Quantity:   d.quantity,
			Price:      d.price,
			Category:   d.category,
		})
	}
	if err := tx.Create(&stock).Error; err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}
	sum.Inventory = len(stock)

	today := s.now().UTC().Format("2006-01-02")
	for _, b := range demoBookings {
		service := services[b.service]
		appt := models.Appointment{
			CustomerID: customers[b.owner].ID,
			ServiceID:  service.ID,
			Date:       b.date,
			Time:       b.time,
			Status:     b.status,
			Notes:      b.notes,
		}
		if err := tx.Create(&appt).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		sum.Appointments++

		items, err := json.Marshal([]map[string]interface{}{{"service": service.Name, "price": *service.Price}})
		if err != nil {
			return err
		}
		status := models.InvoiceUnpaid
		if b.paid {
			status = models.InvoicePaid
		}
		invoice := models.Invoice{
			CustomerID:    appt.CustomerID,
			AppointmentID: appt.ID,
			TotalAmount:   *service.Price,
			Status:        status,
			CreatedDate:   today,
			DueDate:       b.date,
			Items:         datatypes.JSON(items),
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		sum.Invoices++
	}

	for _, c := range customers {
		for day := 0; day < 7; day++ {
			h := models.BusinessHours{CustomerID: c.ID, DayOfWeek: day, OpenTime: "09:00", CloseTime: "17:00"}
			if day >= 5 {
				h = models.BusinessHours{CustomerID: c.ID, DayOfWeek: day, IsClosed: true}
			}
			if err := tx.Create(&h).Error; err != nil {
				return fmt.Errorf("failed to create hours: %w", err)
			}
			sum.Hours++
		}
		if err := s.logSetup(tx, c.ID, "Demo data populated"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) logSetup(tx *gorm.DB, customerID uint, details string) error {
	entry := models.Log{CustomerID: &customerID, Timestamp: s.now().UTC(), Action: "seed", Details: details}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write setup log: %w", err)
	}
	return nil
}

func (o offering) model(customerID uint) models.BusinessService {
	description := o.description
	price := o.price
	minutes := o.minutes
	return models.BusinessService{
		CustomerID:  customerID,
		Name:        o.name,
		Category:    o.category,
		Description: &description,
		Price:       &price,
		Duration:    &minutes,
		IsAvailable: true,
	}
}
