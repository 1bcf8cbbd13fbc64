package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sundrylabs/sundry-mcp/internal/infra/sundry"
)

var (
	ErrUnknownTool   = errors.New("unknown tool")
	ErrQueryRequired = errors.New("query is required")
)

// Backend is the part of the Sundry API the server depends on. Satisfied by
// *sundry.Client; tests substitute a fake.
type Backend interface {
	FetchSources(ctx context.Context) (*sundry.SourcesResponse, error)
	GetContext(ctx context.Context, q sundry.ContextQuery) (*sundry.ContextResponse, error)
}

// Compile-time check: the real client must satisfy Backend.
var _ Backend = (*sundry.Client)(nil)

// Dispatcher validates an invocation and forwards it to the backend.
type Dispatcher struct {
	backend Backend
}

// NewDispatcher creates a Dispatcher bound to the given backend.
func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Dispatch routes one tool invocation. The arguments bag is untyped until the
// query field has been coerced and checked; only then does a backend call
// happen. On success the raw ContextResponse is returned JSON-serialized, so
// every field reaches the caller verbatim.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	if name != ToolName {
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	// Coerce first, then check: only a missing, non-string or empty query
	// is rejected — anything else is the backend's to interpret.
	query, _ := args["query"].(string)
	if query == "" {
		return "", ErrQueryRequired
	}

	resp, err := d.backend.GetContext(ctx, sundry.ContextQuery{Query: query})
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("serialize context response: %w", err)
	}
	return string(raw), nil
}
