// Package vendors turns a plan category, location, and budget tier into a
// short list of recommended vendors backed by an external search provider.
package vendors

import (
	"context"
	"fmt"
	"strconv"

	"github.com/utsavlabs/eventplanner/internal/domain"
	"github.com/utsavlabs/eventplanner/internal/planner"
	"github.com/utsavlabs/eventplanner/internal/search/serpapi"
)

// maxResults caps the combined local+organic list.
const maxResults = 5

// searchClient is the slice of the SerpAPI client the finder needs.
type searchClient interface {
	Search(ctx context.Context, query string) (*serpapi.Results, error)
}

// budgetQualifiers maps a budget tier to the search qualifier word.
// Unrecognized tiers fall back to "best".
var budgetQualifiers = map[string]string{
	planner.BudgetLow:      "affordable",
	planner.BudgetModerate: "best",
	planner.BudgetHigh:     "luxury",
}

// Finder searches for vendors through an injected search client.
type Finder struct {
	client searchClient
}

// NewFinder creates a finder over the given search client.
func NewFinder(client searchClient) *Finder {
	return &Finder{client: client}
}

// FindVendors composes a "<qualifier> <category> in <location> reviews" query,
// runs it against the provider, and normalizes the top results: local results
// first, then organic, truncated to five after concatenation with no
// re-ranking. Any provider failure is re-signaled as a single invalid-params
// error carrying the cause's message; no partial list is ever returned.
func (f *Finder) FindVendors(ctx context.Context, category, location, budget string) ([]domain.Vendor, error) {
	qualifier, ok := budgetQualifiers[budget]
	if !ok {
		qualifier = "best"
	}

	query := fmt.Sprintf("%s %s in %s reviews", qualifier, category, location)

	results, err := f.client.Search(ctx, query)
	if err != nil {
		return nil, domain.ErrInvalidParamsWrap(fmt.Sprintf("Failed to find vendors: %v", err), err)
	}

	vendorList := make([]domain.Vendor, 0, maxResults)
	for _, item := range append(results.Local(), results.Organic()...) {
		vendorList = append(vendorList, normalize(item))
		if len(vendorList) >= maxResults {
			break
		}
	}

	return vendorList, nil
}

// normalize reshapes one search hit into a vendor record, substituting the
// "N/A" sentinel for fields the provider did not return.
func normalize(item serpapi.Result) domain.Vendor {
	v := domain.Vendor{
		Name:    orNA(item.Title),
		Link:    orNA(item.Link),
		Snippet: orNA(item.Snippet),
		Rating:  domain.NotAvailable,
		Reviews: domain.NotAvailable,
	}
	if item.Rating != nil {
		v.Rating = strconv.FormatFloat(*item.Rating, 'f', -1, 64)
	}
	if item.Reviews != nil {
		v.Reviews = strconv.Itoa(*item.Reviews)
	}
	return v
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
