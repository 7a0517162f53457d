// Package storage defines the tool-call log written after every MCP tool
// invocation. The log is observability data only: recording failures are
// logged and never surfaced to the tool caller.
package storage

import (
	"context"
	"time"
)

// ToolCallStatus is the outcome of one tool invocation.
type ToolCallStatus string

const (
	StatusSuccess ToolCallStatus = "success"
	StatusError   ToolCallStatus = "error"
)

// ToolCall is one recorded tool invocation.
type ToolCall struct {
	ID           string
	Tool         string
	Status       ToolCallStatus
	Duration     time.Duration
	Arguments    []byte // raw JSON arguments, may be nil
	Result       []byte // raw JSON result, nil on error
	ErrorMessage string // empty on success
	CreatedAt    time.Time
}

// ToolCallStore persists tool invocations.
type ToolCallStore interface {
	SaveToolCall(ctx context.Context, call *ToolCall) error
	ListToolCalls(ctx context.Context, opts ListOptions) ([]*ToolCall, error)
	Close() error
}

// ListOptions controls tool-call listing.
type ListOptions struct {
	// Tool filters by tool name when non-empty.
	Tool string

	// Limit caps the number of returned records; 0 means a server-chosen
	// default.
	Limit int
}
