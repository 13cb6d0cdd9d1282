package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

type scheduleArgs struct {
	Date string `json:"date"`
}

type offeringsArgs struct {
	Query         string `json:"query"`
	AvailableOnly *Flag  `json:"available_only"`
}

type revenueArgs struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type searchArgs struct {
	Query string `json:"query"`
}

type listFactsArgs struct {
	Category string `json:"category"`
}

type unansweredArgs struct {
	Status string `json:"status"`
}

type noArgs struct{}

func readTools(store KnowledgeStore) []*Tool {
	return []*Tool{
		newTool("get_schedule",
			"List booked appointments, optionally for a single date.",
			object(map[string]jsonschema.Definition{
				"date": str("Date in YYYY-MM-DD format. Omit for all appointments."),
			}),
			false,
			func(ctx context.Context, customerID uint, a scheduleArgs) (string, error) {
				appts, err := store.ListAppointments(ctx, customerID, a.Date)
				if err != nil {
					return "", err
				}
				if len(appts) == 0 {
					if a.Date != "" {
						return fmt.Sprintf("No appointments on %s.", a.Date), nil
					}
					return "No appointments scheduled.", nil
				}
				var sb strings.Builder
				sb.WriteString("Appointments:\n")
				for _, ap := range appts {
					fmt.Fprintf(&sb, "- %s %s (%s)", ap.Date, ap.Time, ap.Status)
					if ap.Notes != "" {
						fmt.Fprintf(&sb, ": %s", ap.Notes)
					}
					sb.WriteString("\n")
				}
				return strings.TrimRight(sb.String(), "\n"), nil
			}),

		newTool("get_offerings",
			"List the services and products the business offers, with prices. Optionally filter by a search query.",
			object(map[string]jsonschema.Definition{
				"query":          str("Text to match against name, description or category"),
				"available_only": boolean("Only list offerings that are currently available (default true)"),
			}),
			false,
			func(ctx context.Context, customerID uint, a offeringsArgs) (string, error) {
				availableOnly := a.AvailableOnly == nil || bool(*a.AvailableOnly)

				var offerings []models.BusinessService
				var err error
				if strings.TrimSpace(a.Query) != "" {
					offerings, err = store.SearchOfferings(ctx, customerID, a.Query)
				} else {
					offerings, err = store.ListOfferings(ctx, customerID, availableOnly)
				}
				if err != nil {
					return "", err
				}

				var lines []string
				for _, o := range offerings {
					if availableOnly && !o.IsAvailable {
						continue
					}
					lines = append(lines, "- "+formatOffering(o))
				}
				if len(lines) == 0 {
					return "No offerings found.", nil
				}
				return "Offerings:\n" + strings.Join(lines, "\n"), nil
			}),

		newTool("get_revenue",
			"Sum paid invoices between two dates. The end date is exclusive.",
			object(map[string]jsonschema.Definition{
				"start_date": str("First day, YYYY-MM-DD"),
				"end_date":   str("Day after the last day, YYYY-MM-DD"),
			}, "start_date", "end_date"),
			false,
			func(ctx context.Context, customerID uint, a revenueArgs) (string, error) {
				sum, err := store.Revenue(ctx, customerID, a.StartDate, a.EndDate)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Revenue from %s to %s: %s across %d paid invoice(s).",
					sum.Start, sum.End, money(sum.Total), sum.Invoices), nil
			}),

		newTool("search_facts",
			"Search the business knowledge base (address, policies, staff, descriptions). Use this before answering questions about the business.",
			object(map[string]jsonschema.Definition{
				"query": str("Word or phrase to look for"),
			}, "query"),
			false,
			func(ctx context.Context, customerID uint, a searchArgs) (string, error) {
				facts, err := store.SearchFacts(ctx, customerID, a.Query)
				if err != nil {
					return "", err
				}
				facts = publicFacts(facts)
				if len(facts) == 0 {
					return fmt.Sprintf("No facts found matching %q.", a.Query), nil
				}
				return formatFacts(facts), nil
			}),

		newTool("list_facts",
			"List everything the knowledge base knows about the business, optionally for one category (general, location, contact, staff).",
			object(map[string]jsonschema.Definition{
				"category": str("Only list facts in this category"),
			}),
			false,
			func(ctx context.Context, customerID uint, a listFactsArgs) (string, error) {
				facts, err := store.ListFacts(ctx, customerID, true)
				if err != nil {
					return "", err
				}
				if category := strings.TrimSpace(a.Category); category != "" {
					filtered := facts[:0]
					for _, f := range facts {
						if strings.EqualFold(f.Category, category) {
							filtered = append(filtered, f)
						}
					}
					facts = filtered
				}
				if len(facts) == 0 {
					return "The knowledge base has no facts yet.", nil
				}
				return formatFacts(facts), nil
			}),

		newTool("get_business_hours",
			"Show opening hours for each day of the week.",
			object(nil),
			false,
			func(ctx context.Context, customerID uint, _ noArgs) (string, error) {
				hours, err := store.ListBusinessHours(ctx, customerID)
				if err != nil {
					return "", err
				}
				if len(hours) == 0 {
					return "Business hours have not been set.", nil
				}
				lines := make([]string, 0, len(hours))
				for _, h := range hours {
					lines = append(lines, formatHours(h))
				}
				return "Business hours:\n" + strings.Join(lines, "\n"), nil
			}),

		newTool("get_inventory",
			"List stocked products with quantities.",
			object(nil),
			false,
			func(ctx context.Context, customerID uint, _ noArgs) (string, error) {
				items, err := store.ListInventory(ctx, customerID)
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "Inventory is empty.", nil
				}
				var sb strings.Builder
				sb.WriteString("Inventory:")
				for _, it := range items {
					fmt.Fprintf(&sb, "\n- %s: %d in stock at %s", it.Name, it.Quantity, money(it.Price))
					if it.Category != "" {
						fmt.Fprintf(&sb, " (%s)", it.Category)
					}
				}
				return sb.String(), nil
			}),

		newTool("list_all_tenants",
			"List the businesses registered on the platform (name, type and address only).",
			object(nil),
			false,
			func(ctx context.Context, _ uint, _ noArgs) (string, error) {
				customers, err := store.ListCustomers(ctx)
				if err != nil {
					return "", err
				}
				if len(customers) == 0 {
					return "No businesses are registered.", nil
				}
				var sb strings.Builder
				sb.WriteString("Businesses:")
				for _, c := range customers {
					fmt.Fprintf(&sb, "\n- #%d %s", c.ID, displayName(c))
					if c.BusinessType != "" {
						fmt.Fprintf(&sb, " (%s)", c.BusinessType)
					}
					if c.BusinessAddress != "" {
						fmt.Fprintf(&sb, ", %s", c.BusinessAddress)
					}
				}
				return sb.String(), nil
			}),

		newTool("get_unanswered_questions",
			"List questions customers asked that nobody could answer yet.",
			object(map[string]jsonschema.Definition{
				"status": str("pending (default), answered, ignored or all"),
			}),
			false,
			func(ctx context.Context, customerID uint, a unansweredArgs) (string, error) {
				status := strings.ToLower(strings.TrimSpace(a.Status))
				switch status {
				case "":
					status = models.QuestionPending
				case "all":
					status = ""
				case models.QuestionPending, models.QuestionAnswered, models.QuestionIgnored:
				default:
					return "", fmt.Errorf("%w: unknown status %q", kb.ErrInvalidArgument, a.Status)
				}

				questions, err := store.ListUnanswered(ctx, customerID, status)
				if err != nil {
					return "", err
				}
				if len(questions) == 0 {
					return "There are no unanswered questions.", nil
				}
				var sb strings.Builder
				sb.WriteString("Unanswered questions:")
				for _, q := range questions {
					fmt.Fprintf(&sb, "\n- #%d [%s] %s (asked %s)", q.ID, q.Status, q.Question, q.Timestamp.Format("2006-01-02 15:04"))
					if q.Response != nil {
						fmt.Fprintf(&sb, " -> %s", *q.Response)
					}
				}
				return sb.String(), nil
			}),
	}
}
