package tools

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatOffering(o models.BusinessService) string {
	var sb strings.Builder
	sb.WriteString(o.Name)
	if o.Category != "" {
		fmt.Fprintf(&sb, " (%s)", o.Category)
	}
	if o.Price != nil {
		fmt.Fprintf(&sb, ": %s", money(*o.Price))
	}
	if o.Duration != nil && *o.Duration > 0 {
		fmt.Fprintf(&sb, ", %d min", *o.Duration)
	}
	if o.Description != nil && *o.Description != "" {
		fmt.Fprintf(&sb, " - %s", *o.Description)
	}
	if !o.IsAvailable {
		sb.WriteString(" [unavailable]")
	}
	return sb.String()
}

func formatFacts(facts []models.BusinessFact) string {
	lines := make([]string, 0, len(facts))
	for _, f := range facts {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", f.Category, f.Title, f.Content))
	}
	return strings.Join(lines, "\n")
}

func publicFacts(facts []models.BusinessFact) []models.BusinessFact {
	out := facts[:0]
	for _, f := range facts {
		if f.IsPublic {
			out = append(out, f)
		}
	}
	return out
}

func formatHours(h models.BusinessHours) string {
	name := fmt.Sprintf("Day %d", h.DayOfWeek)
	if h.DayOfWeek >= 0 && h.DayOfWeek < len(kb.Weekdays) {
		name = kb.Weekdays[h.DayOfWeek]
	}
	switch {
	case h.IsClosed:
		return name + ": closed"
	case h.OpenTime == "" && h.CloseTime == "":
		return name + ": open (hours not set)"
	default:
		return fmt.Sprintf("%s: %s-%s", name, h.OpenTime, h.CloseTime)
	}
}

func displayName(c models.Customer) string {
	if c.BusinessName != "" {
		return c.BusinessName
	}
	return c.Name
}
