package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sundrylabs/sundry-mcp/internal/infra/sundry"
)

// fakeBackend counts calls and returns canned responses. Guarded by a mutex
// so tests can hit one backend from several sessions at once.
type fakeBackend struct {
	mu sync.Mutex

	sources    *sundry.SourcesResponse
	sourcesErr error

	contextResp *sundry.ContextResponse
	contextErr  error

	fetchCalls   int
	contextCalls int
	lastQuery    sundry.ContextQuery
}

func (f *fakeBackend) FetchSources(ctx context.Context) (*sundry.SourcesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.sourcesErr != nil {
		return nil, f.sourcesErr
	}
	return f.sources, nil
}

func (f *fakeBackend) GetContext(ctx context.Context, q sundry.ContextQuery) (*sundry.ContextResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contextCalls++
	f.lastQuery = q
	if f.contextErr != nil {
		return nil, f.contextErr
	}
	return f.contextResp, nil
}

func TestDispatcher_UnknownTool_FailsWithoutBackendCall(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	d := NewDispatcher(backend)

	_, err := d.Dispatch(context.Background(), "delete_everything", map[string]any{"query": "hi"})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if backend.contextCalls != 0 {
		t.Errorf("expected no backend call, got %d", backend.contextCalls)
	}
}

func TestDispatcher_EmptyQuery_FailsWithoutBackendCall(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	d := NewDispatcher(backend)

	for _, args := range []map[string]any{
		{"query": ""},
		{},
		{"query": 42},
	} {
		_, err := d.Dispatch(context.Background(), ToolName, args)
		if !errors.Is(err, ErrQueryRequired) {
			t.Errorf("args %v: expected ErrQueryRequired, got %v", args, err)
		}
	}
	if backend.contextCalls != 0 {
		t.Errorf("expected no backend call, got %d", backend.contextCalls)
	}
}

func TestDispatcher_WhitespaceQuery_IsForwarded(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{contextResp: &sundry.ContextResponse{Confidence: sundry.ConfidenceDoubtful}}
	d := NewDispatcher(backend)

	// Only the empty string is rejected; whitespace is the backend's problem.
	if _, err := d.Dispatch(context.Background(), ToolName, map[string]any{"query": "   "}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if backend.contextCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.contextCalls)
	}
	if backend.lastQuery.Query != "   " {
		t.Errorf("expected query forwarded verbatim, got %q", backend.lastQuery.Query)
	}
}

func TestDispatcher_ValidQuery_ReturnsRawResponseJSON(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		contextResp: &sundry.ContextResponse{
			Confidence:  sundry.ConfidenceOptimistic,
			Data:        "three open PRs",
			UserMessage: "Based on your github sync from today.",
		},
	}
	d := NewDispatcher(backend)

	text, err := d.Dispatch(context.Background(), ToolName, map[string]any{"query": "my open pull requests"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if backend.contextCalls != 1 {
		t.Fatalf("expected exactly 1 backend call, got %d", backend.contextCalls)
	}
	if backend.lastQuery.Query != "my open pull requests" {
		t.Errorf("expected query forwarded verbatim, got %q", backend.lastQuery.Query)
	}

	var got sundry.ContextResponse
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if got != *backend.contextResp {
		t.Errorf("expected raw response relayed, got %+v", got)
	}
}

func TestDispatcher_BackendError_Propagates(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("failed to fetch context: %w", sundry.ErrBackendUnavailable)
	backend := &fakeBackend{contextErr: cause}
	d := NewDispatcher(backend)

	_, err := d.Dispatch(context.Background(), ToolName, map[string]any{"query": "anything"})
	if !errors.Is(err, sundry.ErrBackendUnavailable) {
		t.Fatalf("expected backend error to propagate unmodified, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to fetch context") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}
