package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient calls the Google Gemini API. System and user prompts are
// concatenated into a single user turn, matching how the upstream API is
// commonly driven for one-shot classification.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty", ErrAuth)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

func (g *GeminiClient) Call(ctx context.Context, payload ChatPayload) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := payload.User
	if payload.System != "" {
		prompt = payload.System + "\n\n" + payload.User
	}
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrEmptyResponse)
	}
	return out.String(), nil
}

func classifyGeminiError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate") || strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
