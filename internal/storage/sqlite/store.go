// Package sqlite persists the tool-call log in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/utsavlabs/eventplanner/internal/storage"
)

const defaultListLimit = 50

// Store is a SQLite implementation of ToolCallStore.
type Store struct {
	db *sql.DB
}

var _ storage.ToolCallStore = (*Store)(nil)

// New creates a new SQLite store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tool_calls (
			id TEXT PRIMARY KEY,
			tool TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ns INTEGER,
			arguments TEXT,
			result TEXT,
			error_message TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tool_calls_tool ON tool_calls(tool)`,
		`CREATE INDEX IF NOT EXISTS idx_tool_calls_created ON tool_calls(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveToolCall records one tool invocation.
func (s *Store) SaveToolCall(ctx context.Context, call *storage.ToolCall) error {
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now()
	}

	var arguments, result, errorMessage sql.NullString
	if len(call.Arguments) > 0 {
		arguments = sql.NullString{String: string(call.Arguments), Valid: true}
	}
	if len(call.Result) > 0 {
		result = sql.NullString{String: string(call.Result), Valid: true}
	}
	if call.ErrorMessage != "" {
		errorMessage = sql.NullString{String: call.ErrorMessage, Valid: true}
	}

	query := `INSERT INTO tool_calls (
		id, tool, status, duration_ns, arguments, result, error_message, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		call.ID, call.Tool, string(call.Status), int64(call.Duration),
		arguments, result, errorMessage, call.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save tool call: %w", err)
	}
	return nil
}

// ListToolCalls returns recorded invocations, newest first.
func (s *Store) ListToolCalls(ctx context.Context, opts storage.ListOptions) ([]*storage.ToolCall, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, tool, status, duration_ns, arguments, result, error_message, created_at
		FROM tool_calls`
	args := []any{}
	if opts.Tool != "" {
		query += ` WHERE tool = ?`
		args = append(args, opts.Tool)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tool calls: %w", err)
	}
	defer rows.Close()

	var calls []*storage.ToolCall
	for rows.Next() {
		var call storage.ToolCall
		var status string
		var durationNs int64
		var arguments, result, errorMessage sql.NullString

		if err := rows.Scan(&call.ID, &call.Tool, &status, &durationNs,
			&arguments, &result, &errorMessage, &call.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tool call: %w", err)
		}

		call.Status = storage.ToolCallStatus(status)
		call.Duration = time.Duration(durationNs)
		if arguments.Valid {
			call.Arguments = []byte(arguments.String)
		}
		if result.Valid {
			call.Result = []byte(result.String)
		}
		if errorMessage.Valid {
			call.ErrorMessage = errorMessage.String
		}

		calls = append(calls, &call)
	}
	return calls, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
