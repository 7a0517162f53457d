package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/utsavlabs/eventplanner/internal/catalog"
)

// Budget bucket boundaries in rupees. Amounts below lowCeiling are low,
// below moderateCeiling moderate, everything else high. Both comparisons
// are strict: exactly 50,000 is moderate, exactly 500,000 is high.
const (
	lowCeiling      = 50_000
	moderateCeiling = 500_000
)

var (
	guestCountRe = regexp.MustCompile(`(\d+)\s*guests?`)

	// Numeric budget patterns, tried in order; the first hit wins and the
	// patterns never combine.
	budgetThousandRe = regexp.MustCompile(`(\d+)\s*k`)
	budgetLakhRe     = regexp.MustCompile(`(\d+)\s*lakh`)
	budgetCroreRe    = regexp.MustCompile(`(\d+)\s*crore`)
)

// Clarifying prompts, returned in fixed priority order for the first field
// still missing after extraction.
const (
	promptEventType  = "What kind of event are you planning? (e.g., Wedding, Birthday, or a Festival like Diwali)"
	promptGuestCount = "And about how many guests will be attending? Please provide a number."
	promptBudget     = "To help me plan, what's your budget like? (e.g., low, moderate, high, or a specific amount like 50k or 1 lakh)"
	promptComplete   = "Thank you! I have all the details. I will now create a personalized plan for you."
)

// Extractor fills EventDetails slots from free-text utterances. Catalogs are
// injected at construction so tests can substitute their own reference data.
type Extractor struct {
	events    *catalog.Catalog
	locations *catalog.Catalog
}

// NewExtractor creates an extractor over the given reference catalogs.
func NewExtractor(events, locations *catalog.Catalog) *Extractor {
	return &Extractor{events: events, locations: locations}
}

// ExtractDetails scans userInput for values of the fields still empty on
// details, in fixed order: event type, location, guest count, budget. Fields
// already set are never touched; malformed numbers are silently skipped and
// re-prompted on the next turn. The return value is the clarifying prompt for
// the first field still missing, or a completion confirmation once all four
// are filled. details is mutated in place.
func (e *Extractor) ExtractDetails(details *EventDetails, userInput string) string {
	userInput = strings.ToLower(userInput)

	if details.EventType == "" {
		if name, ok := e.events.Match(userInput); ok {
			details.EventType = name
		}
	}

	if details.Location == "" {
		if name, ok := e.locations.Match(userInput); ok {
			details.Location = name
		}
	}

	if details.GuestCount == 0 {
		if m := guestCountRe.FindStringSubmatch(userInput); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				details.GuestCount = n
			}
		}
	}

	if details.BudgetRange == "" {
		details.BudgetRange = parseBudget(userInput)
	}

	switch {
	case details.EventType == "":
		return promptEventType
	case details.Location == "":
		return fmt.Sprintf("Got it, a %s. Where will this event be held?", details.EventType)
	case details.GuestCount == 0:
		return promptGuestCount
	case details.BudgetRange == "":
		return promptBudget
	}
	return promptComplete
}

// parseBudget derives a budget tier from the utterance. Numeric suffix
// patterns are tried first (k, lakh, crore) and bucketed by amount; if none
// match, explicit tier keywords are scanned. Returns "" when nothing matches.
func parseBudget(userInput string) string {
	var amount int64

	if m := budgetThousandRe.FindStringSubmatch(userInput); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			amount = n * 1_000
		}
	}
	if amount == 0 {
		if m := budgetLakhRe.FindStringSubmatch(userInput); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				amount = n * 100_000
			}
		}
	}
	if amount == 0 {
		if m := budgetCroreRe.FindStringSubmatch(userInput); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				amount = n * 10_000_000
			}
		}
	}

	if amount != 0 {
		switch {
		case amount < lowCeiling:
			return BudgetLow
		case amount < moderateCeiling:
			return BudgetModerate
		default:
			return BudgetHigh
		}
	}

	switch {
	case strings.Contains(userInput, "low budget") || strings.Contains(userInput, "affordable"):
		return BudgetLow
	case strings.Contains(userInput, "moderate"):
		return BudgetModerate
	case strings.Contains(userInput, "high budget") || strings.Contains(userInput, "lavish"):
		return BudgetHigh
	}
	return ""
}
