package provider

import (
	"context"
	"fmt"

	"triage/internal/logger"
)

// Failover walks an ordered provider list and returns the first successful
// reply. Any failure advances to the next provider; the last error wins when
// all of them fail.
type Failover struct {
	providers []ModelProvider
}

func NewFailover(providers []ModelProvider) *Failover {
	enabled := make([]ModelProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil && p.Enabled() {
			enabled = append(enabled, p)
		}
	}
	return &Failover{providers: enabled}
}

func (f *Failover) ID() string    { return "failover" }
func (f *Failover) Enabled() bool { return len(f.providers) > 0 }

// IDs lists the wrapped provider identifiers, in call order.
func (f *Failover) IDs() []string {
	out := make([]string, 0, len(f.providers))
	for _, p := range f.providers {
		out = append(out, p.ID())
	}
	return out
}

func (f *Failover) Call(ctx context.Context, payload ChatPayload) (string, error) {
	if len(f.providers) == 0 {
		return "", fmt.Errorf("%w: no model providers configured", ErrNetwork)
	}
	var lastErr error
	for _, p := range f.providers {
		raw, err := p.Call(ctx, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		logger.Warnf("model %s failed: %v", p.ID(), err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}
