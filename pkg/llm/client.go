package llm

import (
	"context"
	"fmt"
	"time"
)

// CallPolicy bounds a single model invocation. Every call site gets exactly one
// policy so timeout/retry behavior is visible in one place instead of being
// scattered across callers.
type CallPolicy struct {
	Timeout time.Duration
	Retries int // additional attempts after the first failure
}

var DefaultPolicy = CallPolicy{
	Timeout: 60 * time.Second,
	Retries: 0,
}

// Client wraps an LLMProvider with a per-call timeout and bounded retry.
type Client struct {
	provider LLMProvider
	policy   CallPolicy
}

func NewClient(provider LLMProvider, policy CallPolicy) *Client {
	if policy.Timeout <= 0 {
		policy.Timeout = DefaultPolicy.Timeout
	}
	if policy.Retries < 0 {
		policy.Retries = 0
	}
	return &Client{provider: provider, policy: policy}
}

// WithPolicy returns a client sharing the same provider under a different policy.
func (c *Client) WithPolicy(policy CallPolicy) *Client {
	return NewClient(c.provider, policy)
}

func (c *Client) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.policy.Retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
		out, err := c.provider.Chat(callCtx, history, options...)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("llm chat failed after %d attempt(s): %w", c.policy.Retries+1, lastErr)
}

func (c *Client) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return c.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}
