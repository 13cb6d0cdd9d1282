package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

const (
	descriptionTitle = "Business Description"
	addressTitle     = "Address"
	staffPrefix      = "Staff: "
)

type addFactArgs struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsPublic *Flag  `json:"is_public"`
}

type addOfferingArgs struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       *Number `json:"price"`
	Duration    *Number `json:"duration"`
	IsAvailable *Flag   `json:"is_available"`
}

type priceArgs struct {
	ServiceName string `json:"service_name"`
	NewPrice    Number `json:"new_price"`
}

type availabilityArgs struct {
	ServiceName string `json:"service_name"`
	IsAvailable Flag   `json:"is_available"`
}

type hoursArgs struct {
	Day       Weekday `json:"day"`
	OpenTime  string  `json:"open_time"`
	CloseTime string  `json:"close_time"`
	IsClosed  *Flag   `json:"is_closed"`
}

type descriptionArgs struct {
	Description string `json:"description"`
}

type locationArgs struct {
	Address string `json:"address"`
}

type staffArgs struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Experience   string `json:"experience"`
	Specialty    string `json:"specialty"`
	Availability string `json:"availability"`
}

type dayAvailabilityArgs struct {
	Day    Weekday `json:"day"`
	IsOpen Flag    `json:"is_open"`
}

type questionArgs struct {
	Question string `json:"question"`
}

func writeTools(store KnowledgeStore) []*Tool {
	return []*Tool{
		newTool("add_fact",
			"Save a piece of business knowledge. A fact with the same category and title is replaced.",
			object(map[string]jsonschema.Definition{
				"title":     str("Short title, e.g. Parking"),
				"content":   str("The information itself"),
				"category":  str("general, location, contact or staff (default general)"),
				"is_public": boolean("Whether customers may be told this (default true)"),
			}, "title", "content"),
			true,
			func(ctx context.Context, customerID uint, a addFactArgs) (string, error) {
				fact, err := store.UpsertFact(ctx, customerID, kb.FactInput{
					Title:    a.Title,
					Content:  a.Content,
					Category: a.Category,
					IsPublic: a.IsPublic.ptr(),
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Saved fact %q in %s.", fact.Title, fact.Category), nil
			}),

		newTool("add_offering",
			"Add a new service or product.",
			object(map[string]jsonschema.Definition{
				"name":         str("Name of the service or product"),
				"category":     str("Category, e.g. Hair"),
				"description":  str("Short description"),
				"price":        num("Price"),
				"duration":     num("Duration in minutes, for services"),
				"is_available": boolean("Whether it can be booked or bought now (default true)"),
			}, "name"),
			true,
			func(ctx context.Context, customerID uint, a addOfferingArgs) (string, error) {
				o, err := store.AddOffering(ctx, customerID, kb.OfferingInput{
					Name:        a.Name,
					Category:    a.Category,
					Description: optString(a.Description),
					Price:       a.Price.floatPtr(),
					Duration:    a.Duration.intPtr(),
					IsAvailable: a.IsAvailable.ptr(),
				})
				if err != nil {
					return "", err
				}
				return "Added offering " + formatOffering(*o) + ".", nil
			}),

		newTool("set_offering_price",
			"Change the price of an available service or product, matched by exact name.",
			object(map[string]jsonschema.Definition{
				"service_name": str("Exact name of the offering"),
				"new_price":    num("New price"),
			}, "service_name", "new_price"),
			true,
			func(ctx context.Context, customerID uint, a priceArgs) (string, error) {
				o, err := store.SetOfferingPrice(ctx, customerID, a.ServiceName, float64(a.NewPrice))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Price of %s is now %s.", o.Name, money(*o.Price)), nil
			}),

		newTool("set_offering_availability",
			"Mark a service or product as available or unavailable, matched by exact name.",
			object(map[string]jsonschema.Definition{
				"service_name": str("Exact name of the offering"),
				"is_available": boolean("true to offer it, false to withdraw it"),
			}, "service_name", "is_available"),
			true,
			func(ctx context.Context, customerID uint, a availabilityArgs) (string, error) {
				o, err := store.SetOfferingAvailability(ctx, customerID, a.ServiceName, bool(a.IsAvailable))
				if err != nil {
					return "", err
				}
				state := "available"
				if !o.IsAvailable {
					state = "unavailable"
				}
				return fmt.Sprintf("%s is now %s.", o.Name, state), nil
			}),

		newTool("update_business_hours",
			"Set opening and closing time for one day of the week.",
			object(map[string]jsonschema.Definition{
				"day":        day(),
				"open_time":  str("Opening time, HH:MM (24h)"),
				"close_time": str("Closing time, HH:MM (24h)"),
				"is_closed":  boolean("true if the business is closed all day"),
			}, "day"),
			true,
			func(ctx context.Context, customerID uint, a hoursArgs) (string, error) {
				h, err := store.UpsertBusinessHours(ctx, customerID, kb.HoursInput{
					DayOfWeek: int(a.Day),
					OpenTime:  optString(a.OpenTime),
					CloseTime: optString(a.CloseTime),
					IsClosed:  a.IsClosed.ptr(),
				})
				if err != nil {
					return "", err
				}
				return "Updated hours. " + formatHours(*h), nil
			}),

		newTool("update_description",
			"Replace the business description.",
			object(map[string]jsonschema.Definition{
				"description": str("New description of the business"),
			}, "description"),
			true,
			func(ctx context.Context, customerID uint, a descriptionArgs) (string, error) {
				_, err := store.UpsertFact(ctx, customerID, kb.FactInput{
					Title:    descriptionTitle,
					Content:  a.Description,
					Category: models.CategoryGeneral,
				})
				if err != nil {
					return "", err
				}
				return "Business description updated.", nil
			}),

		newTool("update_location",
			"Replace the business address.",
			object(map[string]jsonschema.Definition{
				"address": str("Full street address"),
			}, "address"),
			true,
			func(ctx context.Context, customerID uint, a locationArgs) (string, error) {
				fact, err := store.UpsertFact(ctx, customerID, kb.FactInput{
					Title:    addressTitle,
					Content:  a.Address,
					Category: models.CategoryLocation,
				})
				if err != nil {
					return "", err
				}
				return "Address updated to " + fact.Content + ".", nil
			}),

		// Staff have no natural key, so repeated calls add duplicates.
		newTool("add_staff_member",
			"Add a staff member to the knowledge base.",
			object(map[string]jsonschema.Definition{
				"name":         str("Full name"),
				"role":         str("Job title, e.g. Head Chef"),
				"experience":   str("Experience, e.g. 10 years"),
				"specialty":    str("What they are best at"),
				"availability": str("When they work, e.g. Tue-Sat evenings"),
			}, "name", "role"),
			true,
			func(ctx context.Context, customerID uint, a staffArgs) (string, error) {
				name := strings.TrimSpace(a.Name)
				if name == "" {
					return "", fmt.Errorf("%w: staff name is required", kb.ErrInvalidArgument)
				}
				content := strings.Join([]string{
					"Role: " + a.Role,
					"Experience: " + a.Experience,
					"Specialty: " + a.Specialty,
					"Availability: " + a.Availability,
				}, "\n")
				_, err := store.CreateFact(ctx, customerID, kb.FactInput{
					Title:    staffPrefix + name,
					Content:  content,
					Category: models.CategoryStaff,
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s (%s) to the staff list.", name, a.Role), nil
			}),

		newTool("set_day_availability",
			"Open or close the business for a whole day of the week.",
			object(map[string]jsonschema.Definition{
				"day":     day(),
				"is_open": boolean("true if open on that day"),
			}, "day", "is_open"),
			true,
			func(ctx context.Context, customerID uint, a dayAvailabilityArgs) (string, error) {
				closed := !bool(a.IsOpen)
				h, err := store.UpsertBusinessHours(ctx, customerID, kb.HoursInput{
					DayOfWeek: int(a.Day),
					IsClosed:  &closed,
				})
				if err != nil {
					return "", err
				}
				return "Updated hours. " + formatHours(*h), nil
			}),

		newTool("record_unanswered_question",
			"Record a customer question that no tool or fact could answer, so the owner can follow up.",
			object(map[string]jsonschema.Definition{
				"question": str("The customer's question, verbatim"),
			}, "question"),
			true,
			func(ctx context.Context, customerID uint, a questionArgs) (string, error) {
				q, err := store.RecordUnanswered(ctx, customerID, a.Question)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Recorded question #%d for the business owner. Tell the customer someone will follow up.", q.ID), nil
			}),
	}
}
