// Package ai assembles model providers from configuration entries.
package ai

import (
	"context"
	"strings"
	"time"

	"triage/internal/config"
	"triage/internal/gateway/provider"
	"triage/internal/logger"
)

// BuildProvidersFromConfig constructs one provider per enabled model entry.
// Entries that cannot be constructed (for example a Gemini entry without a
// key) are logged and skipped rather than failing startup.
func BuildProvidersFromConfig(ctx context.Context, models []config.ModelConfig, timeout time.Duration, maxRetries int) []provider.ModelProvider {
	out := make([]provider.ModelProvider, 0, len(models))
	for _, m := range models {
		if !m.Enabled {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(m.Provider)) {
		case "gemini":
			c, err := provider.NewGeminiClient(ctx, m.APIKey, m.Model, timeout)
			if err != nil {
				logger.Warnf("skipping model %s: %v", m.ID, err)
				continue
			}
			out = append(out, provider.NewModel(m.ID, true, c))
		case "openai":
			c := &provider.OpenAIChatClient{
				BaseURL:      m.APIURL,
				APIKey:       m.APIKey,
				Model:        m.Model,
				Timeout:      timeout,
				MaxRetries:   maxRetries,
				ExtraHeaders: m.Headers,
			}
			out = append(out, provider.NewModel(m.ID, true, c))
		default:
			logger.Warnf("skipping model %s: unsupported provider %q", m.ID, m.Provider)
		}
	}
	return out
}
