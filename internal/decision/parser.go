package decision

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedResponse marks a model reply that could not be mapped to a
// complete Decision. The parse fails closed: either every field maps or the
// whole reply is rejected, never a partially populated decision.
var ErrMalformedResponse = errors.New("malformed model response")

// wireDecision mirrors the JSON contract the prompt demands from the model.
type wireDecision struct {
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	ShouldEscalate bool     `json:"should_escalate"`
	EscalateTo     *string  `json:"escalate_to"`
	Reasoning      string   `json:"reasoning"`
	SuggestedTags  []string `json:"suggested_tags"`
	Confidence     *float64 `json:"confidence"`
}

// ParseReply extracts and validates the decision JSON from a raw model reply.
// Markdown fences and surrounding prose are tolerated; enum labels are matched
// case-insensitively; confidence is accepted on either a 0-1 or 0-100 scale.
func ParseReply(raw string) (Decision, error) {
	obj, ok := extractJSONObject(stripFences(raw))
	if !ok {
		return Decision{}, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}
	var w wireDecision
	if err := json.Unmarshal([]byte(obj), &w); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	category, ok := ParseCategory(w.Category)
	if !ok {
		return Decision{}, fmt.Errorf("%w: unknown category %q", ErrMalformedResponse, w.Category)
	}
	priority, ok := ParsePriority(w.Priority)
	if !ok {
		return Decision{}, fmt.Errorf("%w: unknown priority %q", ErrMalformedResponse, w.Priority)
	}
	targetLabel := ""
	if w.EscalateTo != nil {
		targetLabel = *w.EscalateTo
	}
	target, ok := ParseTarget(targetLabel)
	if !ok {
		return Decision{}, fmt.Errorf("%w: unknown escalation target %q", ErrMalformedResponse, targetLabel)
	}
	confidence, err := normalizeConfidence(w.Confidence)
	if err != nil {
		return Decision{}, err
	}

	tags := make([]string, 0, len(w.SuggestedTags))
	for _, t := range w.SuggestedTags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	return Decision{
		Category:   category,
		Priority:   priority,
		Escalate:   w.ShouldEscalate,
		Target:     target,
		Confidence: confidence,
		Reasoning:  strings.TrimSpace(w.Reasoning),
		Tags:       tags,
	}, nil
}

// normalizeConfidence accepts 0-1 (original model contract) or 0-100 (API
// contract) and rejects everything else.
func normalizeConfidence(v *float64) (int, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: confidence missing", ErrMalformedResponse)
	}
	c := *v
	if c < 0 || c > 100 {
		return 0, fmt.Errorf("%w: confidence %v out of range", ErrMalformedResponse, c)
	}
	if c <= 1 {
		c *= 100
	}
	return int(math.Round(c)), nil
}

// stripFences unwraps ```json ... ``` and plain ``` ... ``` blocks.
func stripFences(s string) string {
	if i := strings.Index(s, "```json"); i != -1 {
		rest := s[i+len("```json"):]
		if j := strings.Index(rest, "```"); j != -1 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(s, "```"); i != -1 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j != -1 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

// extractJSONObject finds the first balanced top-level JSON object, skipping
// braces inside string literals.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1]), true
			}
		}
	}
	return "", false
}
