package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func chatResponse(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

func TestOpenAIChatClientSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Write([]byte(chatResponse(`{"category":"billing"}`)))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini"}
	out, err := c.Call(context.Background(), ChatPayload{System: "sys", User: "user"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != `{"category":"billing"}` {
		t.Fatalf("content = %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}

func TestOpenAIChatClientAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m"}
	_, err := c.Call(context.Background(), ChatPayload{User: "u"})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("want ErrAuth, got %v", err)
	}
}

func TestOpenAIChatClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m", MaxRetries: 0}
	_, err := c.Call(context.Background(), ChatPayload{User: "u"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}
}

func TestOpenAIChatClientRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chatResponse("ok")))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m", MaxRetries: 1, Timeout: 10 * time.Second}
	out, err := c.Call(context.Background(), ChatPayload{User: "u"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != "ok" || calls.Load() != 2 {
		t.Fatalf("out=%q calls=%d", out, calls.Load())
	}
}

func TestOpenAIChatClientEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m"}
	_, err := c.Call(context.Background(), ChatPayload{User: "u"})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("want ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIChatClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := &OpenAIChatClient{BaseURL: srv.URL, Model: "m", Timeout: 2 * time.Second}
	_, err := c.Call(context.Background(), ChatPayload{User: "u"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("want ErrNetwork, got %v", err)
	}
}

func TestHeadersForLogRedactsSecrets(t *testing.T) {
	c := &OpenAIChatClient{APIKey: "sk-supersecret1234", ExtraHeaders: map[string]string{"X-API-Key": "abcd9999"}}
	out := c.headersForLog()
	for k, v := range out {
		if k == "Content-Type" {
			continue
		}
		if v == "Bearer sk-supersecret1234" || v == "abcd9999" {
			t.Fatalf("secret leaked in %s=%s", k, v)
		}
	}
}
