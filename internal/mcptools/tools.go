// Package mcptools registers the event planner's tool surface on an MCP
// server: about, validate, start_event_planning, ask_for_details, plan_event,
// and find_vendors. Every invocation is logged and recorded to the tool-call
// store.
package mcptools

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/utsavlabs/eventplanner/internal/planner"
	"github.com/utsavlabs/eventplanner/internal/server"
	"github.com/utsavlabs/eventplanner/internal/storage"
	"github.com/utsavlabs/eventplanner/internal/vendors"
)

const (
	serverName        = "Event Planner AI"
	serverVersion     = "1.0.0"
	serverDescription = "An AI assistant for planning social events in India."

	greeting = "👋 Namaste! I am your personal Event Planner AI. Let's plan your perfect event! First, what kind of event are you planning? (e.g., Wedding, Birthday, Festival Party)"
)

// Deps carries the collaborators the tool handlers need.
type Deps struct {
	Extractor *planner.Extractor
	Finder    *vendors.Finder

	// MyNumber is the registered caller identity returned by validate.
	MyNumber string

	// Store receives one record per invocation; nil disables recording.
	Store storage.ToolCallStore

	Logger *slog.Logger
}

// AboutOutput is the static server metadata.
type AboutOutput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AskForDetailsInput carries the caller-owned conversation state plus the
// user's newest message. The caller must pass the last known state back in;
// the server keeps none.
type AskForDetailsInput struct {
	EventDetails planner.EventDetails `json:"event_details"`
	UserInput    string               `json:"user_input"`
}

// AskForDetailsOutput returns the next prompt (or completion confirmation)
// together with the updated details the caller must re-supply next turn.
type AskForDetailsOutput struct {
	Message      string               `json:"message"`
	EventDetails planner.EventDetails `json:"event_details"`
}

// PlanEventInput carries the completed details to plan from.
type PlanEventInput struct {
	EventDetails planner.EventDetails `json:"event_details"`
}

// FindVendorsInput selects what to search for.
type FindVendorsInput struct {
	Category string `json:"category"`
	Location string `json:"location"`
	Budget   string `json:"budget,omitempty"`
}

// findVendorsSchema is written out by hand because the budget parameter has
// a default the struct can't express.
var findVendorsSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"category": {
			Type:        "string",
			Description: "The vendor category to search for (e.g., 'Wedding Photographer').",
		},
		"location": {
			Type:        "string",
			Description: "The location for the search (e.g., 'Tiruchirappalli, Tamil Nadu').",
		},
		"budget": {
			Type:        "string",
			Description: "The budget range for vendors ('low', 'moderate', 'high').",
			Default:     json.RawMessage(`"moderate"`),
		},
	},
	Required: []string{"category", "location"},
}

// NewServer builds the MCP server with all six tools registered.
func NewServer(deps Deps) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "about",
		Description: "Returns the server's name and description.",
	}, instrument(deps, "about", deps.handleAbout))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "validate",
		Description: "Returns the registered caller identity for bearer-token-authenticated identity confirmation.",
	}, instrument(deps, "validate", deps.handleValidate))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "start_event_planning",
		Description: "Initializes the event planning process and greets the user.",
	}, instrument(deps, "start_event_planning", deps.handleStart))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ask_for_details",
		Description: "Analyzes user input to update event details and prompts for missing information. Pass the last known event details back in on every turn.",
	}, instrument(deps, "ask_for_details", deps.handleAskForDetails))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "plan_event",
		Description: "Generates a comprehensive event plan and a vendor checklist based on the final, complete event details.",
	}, instrument(deps, "plan_event", deps.handlePlanEvent))

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "find_vendors",
		Description: "Searches for and recommends up to five vendors using a search API and budget constraints.",
		InputSchema: findVendorsSchema,
	}, instrument(deps, "find_vendors", deps.handleFindVendors))

	return srv
}

func (d Deps) handleAbout(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, AboutOutput, error) {
	return nil, AboutOutput{Name: serverName, Description: serverDescription}, nil
}

func (d Deps) handleValidate(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return textResult(d.MyNumber), nil, nil
}

func (d Deps) handleStart(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return textResult(greeting), nil, nil
}

func (d Deps) handleAskForDetails(ctx context.Context, req *mcp.CallToolRequest, in AskForDetailsInput) (*mcp.CallToolResult, AskForDetailsOutput, error) {
	details := in.EventDetails
	message := d.Extractor.ExtractDetails(&details, in.UserInput)
	return nil, AskForDetailsOutput{Message: message, EventDetails: details}, nil
}

func (d Deps) handlePlanEvent(ctx context.Context, req *mcp.CallToolRequest, in PlanEventInput) (*mcp.CallToolResult, planner.Plan, error) {
	plan, err := planner.BuildPlan(&in.EventDetails)
	if err != nil {
		return nil, planner.Plan{}, err
	}
	return nil, *plan, nil
}

func (d Deps) handleFindVendors(ctx context.Context, req *mcp.CallToolRequest, in FindVendorsInput) (*mcp.CallToolResult, any, error) {
	budget := in.Budget
	if budget == "" {
		budget = planner.BudgetModerate
	}

	vendorList, err := d.Finder.FindVendors(ctx, in.Category, in.Location, budget)
	if err != nil {
		return nil, nil, err
	}

	body, err := json.MarshalIndent(vendorList, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(body)}},
		StructuredContent: vendorList,
	}, nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// instrument wraps a tool handler with structured logging and tool-call
// recording. Recording failures never affect the tool result.
func instrument[In, Out any](deps Deps, name string, h mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)
		deps.record(ctx, name, in, out, err, time.Since(start))
		return res, out, err
	}
}

func (d Deps) record(ctx context.Context, name string, in, out any, callErr error, duration time.Duration) {
	server.AddLogField(ctx, "tool", name)
	server.AddError(ctx, callErr)

	if callErr != nil {
		d.Logger.Warn("tool call failed",
			slog.String("tool", name),
			slog.Duration("duration", duration),
			slog.String("error", callErr.Error()))
	} else {
		d.Logger.Info("tool call completed",
			slog.String("tool", name),
			slog.Duration("duration", duration))
	}

	if d.Store == nil {
		return
	}

	call := &storage.ToolCall{
		ID:       uuid.New().String(),
		Tool:     name,
		Status:   storage.StatusSuccess,
		Duration: duration,
	}
	if args, err := json.Marshal(in); err == nil {
		call.Arguments = args
	}
	if callErr != nil {
		call.Status = storage.StatusError
		call.ErrorMessage = callErr.Error()
	} else if result, err := json.Marshal(out); err == nil {
		call.Result = result
	}

	if err := d.Store.SaveToolCall(ctx, call); err != nil {
		d.Logger.Warn("failed to record tool call",
			slog.String("tool", name),
			slog.String("error", err.Error()))
	}
}
