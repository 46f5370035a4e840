package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
)

// Tool is one independently callable capability. Tools never call each other,
// and every tool owns an explicit fallback so the loop can always make
// progress: Invoke returns a usable observation even when the underlying
// dependency fails.
type Tool interface {
	Name() string
	Description() string
	InputSchema() string
	Timeout() time.Duration
	Validate(args json.RawMessage) error
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry holds the tool suite and dispatches calls under per-tool timeouts.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger logger.ILogger
}

func NewRegistry(log logger.ILogger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: log,
	}
}

func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Describe renders the tool signatures for the loop's system prompt.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for _, name := range r.order {
		t := r.tools[name]
		sb.WriteString(fmt.Sprintf("- %s: %s\n  Input: %s\n", t.Name(), t.Description(), t.InputSchema()))
	}
	return sb.String()
}

// Dispatch invokes the named tool under its own timeout and returns the
// observation. Tool errors are recovered into an error observation here so
// they never cross into the loop as failures.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) string {
	t, ok := r.tools[name]
	if !ok {
		return fmt.Sprintf("error: unknown tool %q", name)
	}

	if err := t.Validate(args); err != nil {
		return fmt.Sprintf("error: invalid arguments for %s: %v", name, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, t.Timeout())
	defer cancel()

	started := time.Now()
	observation, err := t.Invoke(callCtx, args)
	elapsed := time.Since(started)

	if err != nil {
		r.logger.Warn("ToolRegistry", "Tool invocation degraded", map[string]interface{}{
			"tool":       name,
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
		return fmt.Sprintf("error: tool %s failed: %v", name, err)
	}

	r.logger.Debug("ToolRegistry", "Tool invoked", map[string]interface{}{
		"tool":       name,
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return observation
}
