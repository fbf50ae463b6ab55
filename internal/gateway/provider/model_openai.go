package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"triage/internal/logger"
	"triage/internal/pkg/text"
)

// OpenAIChatClient talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIChatClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	ExtraHeaders map[string]string
}

func (c *OpenAIChatClient) Call(ctx context.Context, payload ChatPayload) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := c.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	url := c.chatCompletionsURL()
	body := buildChatBody(c.Model, payload)
	logger.Debugf("model request: POST %s headers=%v body=%s", url, c.headersForLog(), text.Truncate(string(body), 2000))

	httpc := &http.Client{Timeout: timeout}
	return c.doChatCompletions(ctx, httpc, url, body, maxRetries)
}

func (c *OpenAIChatClient) chatCompletionsURL() string {
	url := strings.TrimRight(c.BaseURL, "/")
	if url == "" {
		url = "https://api.openai.com/v1"
	}
	url = strings.TrimSuffix(url, "/chat/completions")
	return url + "/chat/completions"
}

func buildChatBody(model string, payload ChatPayload) []byte {
	messages := make([]map[string]any, 0, 2)
	if payload.System != "" {
		messages = append(messages, map[string]any{"role": "system", "content": payload.System})
	}
	messages = append(messages, map[string]any{"role": "user", "content": payload.User})

	maxTokens := payload.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	body := map[string]any{
		"model":       model,
		"messages":    messages,
		"temperature": 0.2,
		"max_tokens":  maxTokens,
	}
	if payload.ExpectJSON {
		body["response_format"] = map[string]string{"type": "json_object"}
	}
	b, _ := json.Marshal(body)
	return b
}

func (c *OpenAIChatClient) doChatCompletions(ctx context.Context, httpc *http.Client, url string, body []byte, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		for k, v := range c.headers() {
			req.Header.Set(k, v)
		}
		resp, err := httpc.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrNetwork, err)
			if ctx.Err() != nil || attempt == maxRetries {
				break
			}
			continue
		}

		if resp.StatusCode/100 == 2 {
			content, err := decodeChatContent(resp)
			if err != nil {
				lastErr = err
				break
			}
			return content, nil
		}

		msg := parseError(resp)
		lastErr = classifyStatus(resp.StatusCode, msg)
		if shouldRetry(resp.StatusCode) && attempt < maxRetries {
			wait := parseRetryAfter(resp.Header.Get("Retry-After"), attempt)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
			case <-time.After(wait):
			}
			continue
		}
		break
	}
	return "", lastErr
}

func classifyStatus(code int, msg string) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status=%d: %s", ErrAuth, code, msg)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	default:
		return fmt.Errorf("%w: status=%d: %s", ErrNetwork, code, msg)
	}
}

func decodeChatContent(resp *http.Response) (string, error) {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debugf("model response body close failed: %v", cerr)
		}
	}()
	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrEmptyResponse, err)
	}
	if len(r.Choices) == 0 || strings.TrimSpace(r.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}
	return r.Choices[0].Message.Content, nil
}

func (c *OpenAIChatClient) headers() map[string]string {
	out := map[string]string{"Content-Type": "application/json"}
	if c.APIKey != "" {
		out["Authorization"] = fmt.Sprintf("Bearer %s", c.APIKey)
	}
	for k, v := range c.ExtraHeaders {
		out[k] = v
	}
	return out
}

func (c *OpenAIChatClient) headersForLog() map[string]string {
	out := map[string]string{}
	for k, v := range c.headers() {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "auth") || strings.Contains(lk, "key") || strings.Contains(lk, "token") {
			if len(v) > 4 {
				out[k] = "****" + v[len(v)-4:]
			} else {
				out[k] = "****"
			}
			continue
		}
		out[k] = v
	}
	return out
}

func parseError(resp *http.Response) string {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debugf("model response body close failed: %v", cerr)
		}
	}()
	var eresp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&eresp); err == nil && strings.TrimSpace(eresp.Error.Message) != "" {
		return eresp.Error.Message
	}
	return resp.Status
}

func shouldRetry(code int) bool {
	return code == 429 || code == 500 || code == 502 || code == 503 || code == 504
}

func parseRetryAfter(v string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	base := 800 * time.Millisecond
	wait := base << attempt
	if wait > 8*time.Second {
		wait = 8 * time.Second
	}
	return wait
}
