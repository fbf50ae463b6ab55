package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type cannedProvider struct {
	id      string
	enabled bool
	raw     string
	err     error
	called  bool
}

func (c *cannedProvider) ID() string    { return c.id }
func (c *cannedProvider) Enabled() bool { return c.enabled }
func (c *cannedProvider) Call(ctx context.Context, payload ChatPayload) (string, error) {
	c.called = true
	return c.raw, c.err
}

func TestFailoverFirstSuccessWins(t *testing.T) {
	first := &cannedProvider{id: "a", enabled: true, raw: "from-a"}
	second := &cannedProvider{id: "b", enabled: true, raw: "from-b"}
	f := NewFailover([]ModelProvider{first, second})

	out, err := f.Call(context.Background(), ChatPayload{User: "u"})
	if err != nil || out != "from-a" {
		t.Fatalf("out=%q err=%v", out, err)
	}
	if second.called {
		t.Fatal("second provider called despite first success")
	}
}

func TestFailoverAdvancesOnError(t *testing.T) {
	first := &cannedProvider{id: "a", enabled: true, err: fmt.Errorf("%w: down", ErrNetwork)}
	second := &cannedProvider{id: "b", enabled: true, raw: "from-b"}
	f := NewFailover([]ModelProvider{first, second})

	out, err := f.Call(context.Background(), ChatPayload{User: "u"})
	if err != nil || out != "from-b" {
		t.Fatalf("out=%q err=%v", out, err)
	}
}

func TestFailoverAllFail(t *testing.T) {
	first := &cannedProvider{id: "a", enabled: true, err: fmt.Errorf("%w: down", ErrNetwork)}
	second := &cannedProvider{id: "b", enabled: true, err: fmt.Errorf("%w: quota", ErrRateLimited)}
	f := NewFailover([]ModelProvider{first, second})

	_, err := f.Call(context.Background(), ChatPayload{User: "u"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("want last error, got %v", err)
	}
}

func TestFailoverSkipsDisabled(t *testing.T) {
	disabled := &cannedProvider{id: "a", enabled: false, raw: "nope"}
	enabled := &cannedProvider{id: "b", enabled: true, raw: "yes"}
	f := NewFailover([]ModelProvider{disabled, enabled})

	if got := f.IDs(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("IDs = %v", got)
	}
	out, err := f.Call(context.Background(), ChatPayload{User: "u"})
	if err != nil || out != "yes" {
		t.Fatalf("out=%q err=%v", out, err)
	}
	if disabled.called {
		t.Fatal("disabled provider was called")
	}
}

func TestFailoverEmpty(t *testing.T) {
	f := NewFailover(nil)
	if f.Enabled() {
		t.Fatal("empty failover reports enabled")
	}
	if _, err := f.Call(context.Background(), ChatPayload{User: "u"}); !errors.Is(err, ErrNetwork) {
		t.Fatalf("want ErrNetwork, got %v", err)
	}
}
