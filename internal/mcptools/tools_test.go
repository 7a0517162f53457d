package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/utsavlabs/eventplanner/internal/catalog"
	"github.com/utsavlabs/eventplanner/internal/domain"
	"github.com/utsavlabs/eventplanner/internal/planner"
	"github.com/utsavlabs/eventplanner/internal/search/serpapi"
	"github.com/utsavlabs/eventplanner/internal/storage"
	"github.com/utsavlabs/eventplanner/internal/storage/sqlite"
	"github.com/utsavlabs/eventplanner/internal/vendors"
)

type stubSearch struct {
	results   *serpapi.Results
	err       error
	lastQuery string
}

func (s *stubSearch) Search(ctx context.Context, query string) (*serpapi.Results, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func testDeps(search *stubSearch) Deps {
	if search == nil {
		search = &stubSearch{results: &serpapi.Results{}}
	}
	return Deps{
		Extractor: planner.NewExtractor(catalog.DefaultEvents(), catalog.DefaultLocations()),
		Finder:    vendors.NewFinder(search),
		MyNumber:  "919876543210",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewServer_RegistersTools(t *testing.T) {
	if srv := NewServer(testDeps(nil)); srv == nil {
		t.Fatal("NewServer() = nil")
	}
}

func TestHandleAbout(t *testing.T) {
	deps := testDeps(nil)
	_, out, err := deps.handleAbout(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleAbout() error = %v", err)
	}
	if out.Name != "Event Planner AI" {
		t.Errorf("Name = %q", out.Name)
	}
	if out.Description == "" {
		t.Error("Description is empty")
	}
}

func TestHandleValidate_ReturnsCallerIdentity(t *testing.T) {
	deps := testDeps(nil)
	res, _, err := deps.handleValidate(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleValidate() error = %v", err)
	}
	if got := textOf(t, res); got != "919876543210" {
		t.Errorf("validate = %q, want caller identity", got)
	}
}

func TestHandleStart_Greeting(t *testing.T) {
	deps := testDeps(nil)
	res, _, err := deps.handleStart(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleStart() error = %v", err)
	}
	if got := textOf(t, res); !strings.Contains(got, "Event Planner AI") {
		t.Errorf("greeting = %q", got)
	}
}

func TestHandleAskForDetails_UpdatesAndPrompts(t *testing.T) {
	deps := testDeps(nil)
	in := AskForDetailsInput{UserInput: "a wedding for 150 guests"}

	_, out, err := deps.handleAskForDetails(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("handleAskForDetails() error = %v", err)
	}

	if out.EventDetails.EventType != "Wedding" {
		t.Errorf("EventType = %q, want Wedding", out.EventDetails.EventType)
	}
	if out.EventDetails.GuestCount != 150 {
		t.Errorf("GuestCount = %d, want 150", out.EventDetails.GuestCount)
	}
	if !strings.Contains(out.Message, "Where will this event be held?") {
		t.Errorf("Message = %q, want location prompt", out.Message)
	}
}

func TestHandleAskForDetails_CallerOwnsState(t *testing.T) {
	deps := testDeps(nil)
	in := AskForDetailsInput{
		EventDetails: planner.EventDetails{EventType: "Wedding", Location: "Delhi, NCR", GuestCount: 50},
		UserInput:    "around 2 lakh",
	}

	_, out, err := deps.handleAskForDetails(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("handleAskForDetails() error = %v", err)
	}
	if out.EventDetails.BudgetRange != planner.BudgetModerate {
		t.Errorf("BudgetRange = %q, want moderate", out.EventDetails.BudgetRange)
	}
	if !strings.Contains(out.Message, "I have all the details") {
		t.Errorf("Message = %q, want completion confirmation", out.Message)
	}
}

func TestHandlePlanEvent(t *testing.T) {
	deps := testDeps(nil)
	in := PlanEventInput{EventDetails: planner.EventDetails{EventType: "Wedding"}}

	_, out, err := deps.handlePlanEvent(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("handlePlanEvent() error = %v", err)
	}
	if len(out.PlanItems) != 7 {
		t.Errorf("PlanItems len = %d, want 7", len(out.PlanItems))
	}
}

func TestHandlePlanEvent_MissingEventType(t *testing.T) {
	deps := testDeps(nil)
	_, _, err := deps.handlePlanEvent(context.Background(), nil, PlanEventInput{})
	var toolErr *domain.ToolError
	if !errors.As(err, &toolErr) || toolErr.Type != domain.ErrorTypeInvalidParams {
		t.Errorf("error = %v, want invalid_params ToolError", err)
	}
}

func TestHandleFindVendors_DefaultBudget(t *testing.T) {
	search := &stubSearch{results: &serpapi.Results{
		OrganicResults: []serpapi.Result{{Title: "Best Caterers"}},
	}}
	deps := testDeps(search)

	res, _, err := deps.handleFindVendors(context.Background(), nil, FindVendorsInput{
		Category: "Caterer",
		Location: "Delhi, NCR",
	})
	if err != nil {
		t.Fatalf("handleFindVendors() error = %v", err)
	}

	var got []domain.Vendor
	if err := json.Unmarshal([]byte(textOf(t, res)), &got); err != nil {
		t.Fatalf("result content is not a vendor list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Best Caterers" {
		t.Errorf("vendors = %+v", got)
	}
	// An omitted budget searches with the moderate qualifier.
	if search.lastQuery != "best Caterer in Delhi, NCR reviews" {
		t.Errorf("query = %q", search.lastQuery)
	}
}

func TestHandleFindVendors_ProviderFailure(t *testing.T) {
	deps := testDeps(&stubSearch{err: errors.New("timeout")})

	_, _, err := deps.handleFindVendors(context.Background(), nil, FindVendorsInput{
		Category: "Caterer",
		Location: "Delhi, NCR",
		Budget:   "low",
	})
	if err == nil {
		t.Fatal("handleFindVendors() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "Failed to find vendors") {
		t.Errorf("error = %v", err)
	}
}

func TestInstrument_RecordsToStore(t *testing.T) {
	store, err := sqlite.New("file:mcptools1?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer store.Close()

	deps := testDeps(nil)
	deps.Store = store

	wrapped := instrument(deps, "ask_for_details", deps.handleAskForDetails)
	if _, _, err := wrapped(context.Background(), nil, AskForDetailsInput{UserInput: "a birthday"}); err != nil {
		t.Fatalf("wrapped handler error = %v", err)
	}

	calls, err := store.ListToolCalls(context.Background(), storage.ListOptions{Tool: "ask_for_details"})
	if err != nil {
		t.Fatalf("ListToolCalls() error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("recorded calls = %d, want 1", len(calls))
	}
	if calls[0].Status != storage.StatusSuccess {
		t.Errorf("Status = %q, want success", calls[0].Status)
	}
	if !strings.Contains(string(calls[0].Arguments), "a birthday") {
		t.Errorf("Arguments = %s", calls[0].Arguments)
	}
}

func TestInstrument_RecordsFailure(t *testing.T) {
	store, err := sqlite.New("file:mcptools2?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer store.Close()

	deps := testDeps(&stubSearch{err: errors.New("boom")})
	deps.Store = store

	wrapped := instrument(deps, "find_vendors", deps.handleFindVendors)
	if _, _, err := wrapped(context.Background(), nil, FindVendorsInput{Category: "DJ", Location: "Mumbai"}); err == nil {
		t.Fatal("wrapped handler error = nil, want error")
	}

	calls, err := store.ListToolCalls(context.Background(), storage.ListOptions{Tool: "find_vendors"})
	if err != nil {
		t.Fatalf("ListToolCalls() error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("recorded calls = %d, want 1", len(calls))
	}
	if calls[0].Status != storage.StatusError {
		t.Errorf("Status = %q, want error", calls[0].Status)
	}
	if !strings.Contains(calls[0].ErrorMessage, "Failed to find vendors") {
		t.Errorf("ErrorMessage = %q", calls[0].ErrorMessage)
	}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	return text.Text
}
