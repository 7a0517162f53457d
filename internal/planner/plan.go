package planner

import (
	"strings"

	"github.com/utsavlabs/eventplanner/internal/domain"
)

// PlanItem is one category/description pair on the event checklist.
type PlanItem struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Plan echoes the event details back alongside the generated checklist.
type Plan struct {
	EventType   string     `json:"event_type"`
	Location    string     `json:"location"`
	GuestCount  int        `json:"guest_count"`
	BudgetRange string     `json:"budget_range"`
	PlanItems   []PlanItem `json:"plan_items"`
}

var weddingPlanItems = []PlanItem{
	{Category: "Venue & Catering", Description: "Booking a suitable venue and caterer for the ceremony and reception."},
	{Category: "Photography & Videography", Description: "Hiring a photographer and videographer to capture candid and traditional moments."},
	{Category: "Decorations & Florist", Description: "Arranging for mandap decor, floral arrangements, and lighting."},
	{Category: "Bridal Services", Description: "Hiring a professional makeup and mehendi artist for the bride."},
	{Category: "Entertainment", Description: "Booking a DJ or live band for music and a choreographer for sangeet."},
	{Category: "Ceremony Officiant", Description: "Finding a priest or pandit to conduct the rituals."},
	{Category: "Logistics", Description: "Arranging transportation for the baraat and guests."},
}

var birthdayPlanItems = []PlanItem{
	{Category: "Venue & Decor", Description: "Booking a party hall and setting up theme-based decorations."},
	{Category: "Catering", Description: "Arranging food, drinks, and a birthday cake."},
	{Category: "Entertainment", Description: "Hiring a DJ, magician, or other performers."},
	{Category: "Photography", Description: "Hiring a photographer to capture the celebration."},
}

var genericPlanItems = []PlanItem{
	{Category: "General", Description: "This is a basic plan as the event type is not recognized."},
	{Category: "Venue", Description: "Selecting a suitable location."},
	{Category: "Food", Description: "Planning for food and beverages."},
	{Category: "Services", Description: "Arranging for essential services like music and photography."},
}

// BuildPlan generates the checklist for a completed set of event details.
// The template is selected by a case-insensitive substring match on the event
// type: "wedding" and "birthday" each have a fixed checklist, anything else
// falls through to a generic one. The function is pure; identical input
// always yields identical output.
//
// An empty event type is a contract violation and returns an invalid-params
// error rather than silently producing the generic plan.
func BuildPlan(details *EventDetails) (*Plan, error) {
	if details == nil || details.EventType == "" {
		return nil, domain.ErrInvalidParams("plan_event requires event_type; call ask_for_details until the details are complete")
	}

	plan := &Plan{
		EventType:   details.EventType,
		Location:    details.Location,
		GuestCount:  details.GuestCount,
		BudgetRange: details.BudgetRange,
	}

	eventType := strings.ToLower(details.EventType)
	switch {
	case strings.Contains(eventType, "wedding"):
		plan.PlanItems = append([]PlanItem(nil), weddingPlanItems...)
	case strings.Contains(eventType, "birthday"):
		plan.PlanItems = append([]PlanItem(nil), birthdayPlanItems...)
	default:
		plan.PlanItems = append([]PlanItem(nil), genericPlanItems...)
	}

	return plan, nil
}
