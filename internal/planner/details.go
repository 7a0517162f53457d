// Package planner implements the conversation core: the slot-filling
// extractor that accumulates event details across turns, and the templated
// plan generator that turns completed details into a checklist.
package planner

import (
	"github.com/utsavlabs/eventplanner/internal/domain"
)

// Budget tiers derived from a numeric amount or an explicit keyword.
const (
	BudgetLow      = "low"
	BudgetModerate = "moderate"
	BudgetHigh     = "high"
)

// EventDetails is the conversation's accumulated state. The caller owns the
// record and threads it through successive tool calls; the server keeps no
// session state. Fields are write-once: extraction never overwrites a field
// that is already set.
type EventDetails struct {
	// EventType is a canonical name from the event catalog, e.g. "Wedding".
	EventType string `json:"event_type,omitempty"`

	// Location is a canonical place name from the location catalog.
	Location string `json:"location,omitempty"`

	// GuestCount is the expected number of attendees.
	GuestCount int `json:"guest_count,omitempty"`

	// BudgetRange is one of BudgetLow, BudgetModerate, BudgetHigh.
	BudgetRange string `json:"budget_range,omitempty"`

	// Theme is an optional free-text theme. It is never extracted, only
	// carried through for callers that set it.
	Theme string `json:"theme,omitempty"`

	// VendorDetails maps a plan category to vendor search results. The
	// extractor ignores it; callers populate it after find_vendors calls.
	VendorDetails map[string][]domain.Vendor `json:"vendor_details,omitempty"`
}

// Complete reports whether every extracted field has been filled.
func (d *EventDetails) Complete() bool {
	return d.EventType != "" && d.Location != "" && d.GuestCount != 0 && d.BudgetRange != ""
}
