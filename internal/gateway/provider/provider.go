// Package provider abstracts the external model call. The classification core
// depends only on ModelProvider, so tests substitute canned implementations.
package provider

import (
	"context"
	"errors"
)

// ChatPayload carries one prompt exchange.
type ChatPayload struct {
	System     string
	User       string
	MaxTokens  int
	ExpectJSON bool
}

// ModelProvider is the capability boundary to an external language model.
type ModelProvider interface {
	ID() string
	Enabled() bool
	Call(ctx context.Context, payload ChatPayload) (string, error)
}

// Typed failure kinds. Callers classify with errors.Is; every kind degrades
// to a fallback decision in the interpreter rather than surfacing.
var (
	ErrNetwork       = errors.New("model network failure")
	ErrAuth          = errors.New("model authentication failure")
	ErrRateLimited   = errors.New("model rate limited")
	ErrEmptyResponse = errors.New("model returned empty response")
)

// Model pairs an identifier with a client so provider lists can be assembled
// from config entries.
type Model struct {
	id      string
	enabled bool
	client  interface {
		Call(ctx context.Context, payload ChatPayload) (string, error)
	}
}

func NewModel(id string, enabled bool, client interface {
	Call(context.Context, ChatPayload) (string, error)
}) *Model {
	return &Model{id: id, enabled: enabled, client: client}
}

func (m *Model) ID() string    { return m.id }
func (m *Model) Enabled() bool { return m.enabled }
func (m *Model) Call(ctx context.Context, payload ChatPayload) (string, error) {
	return m.client.Call(ctx, payload)
}
