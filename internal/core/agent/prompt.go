package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// systemPrompt builds the instructions for one turn. Tool guidance is only
// given when a tenant is known.
func (e *Engine) systemPrompt(ctx context.Context, customerID *uint, logger zerolog.Logger) string {
	var sb strings.Builder
	today := e.now().Format("Monday, 2006-01-02")

	if customerID == nil {
		sb.WriteString("You are Chatherine, a friendly assistant for small businesses.\n")
		fmt.Fprintf(&sb, "Today is %s.\n", today)
		sb.WriteString("Answer briefly and politely.")
		return sb.String()
	}

	business := fmt.Sprintf("business #%d", *customerID)
	if e.businesses != nil {
		c, err := e.businesses.GetCustomer(ctx, *customerID)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("customer lookup failed, using generic prompt")
		case c.BusinessName != "":
			business = c.BusinessName
			if c.BusinessType != "" {
				business += fmt.Sprintf(" (a %s)", c.BusinessType)
			}
		case c.Name != "":
			business = c.Name
		}
	}

	fmt.Fprintf(&sb, "You are Chatherine, the assistant for %s.\n", business)
	fmt.Fprintf(&sb, "Today is %s.\n\n", today)
	sb.WriteString("Rules:\n")
	sb.WriteString("- Never guess facts about the business. Call search_facts or list_facts before answering questions about it.\n")
	sb.WriteString("- Use the other tools for offerings, prices, hours, schedule, inventory and revenue.\n")
	sb.WriteString("- When the owner tells you something new about the business, save it with the matching tool.\n")
	sb.WriteString("- If no tool or fact answers the question, call record_unanswered_question with the question and say the owner will follow up.\n")
	sb.WriteString("- Answer briefly and politely.")
	return sb.String()
}
