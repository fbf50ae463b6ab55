// Package decision turns ticket text into a validated triage decision: it
// builds the model prompt, interprets the reply, and enforces the hard rules.
package decision

import (
	"strings"

	"triage/internal/rules"
)

// Category enumerates ticket classifications.
type Category string

const (
	CategoryBilling        Category = "billing"
	CategoryTechnical      Category = "technical"
	CategoryAccount        Category = "account"
	CategoryFeatureRequest Category = "feature_request"
	CategoryChurn          Category = "churn"
)

// Priority enumerates urgency levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Decision is the structured triage output for one ticket. Confidence is a
// percentage; zero together with the "classification unavailable" reasoning
// prefix marks a degraded fallback.
type Decision struct {
	Category   Category     `json:"category"`
	Priority   Priority     `json:"priority"`
	Escalate   bool         `json:"escalate"`
	Target     rules.Target `json:"target"`
	Confidence int          `json:"confidence"`
	Reasoning  string       `json:"reasoning"`
	Tags       []string     `json:"tags"`
}

// FallbackPrefix starts the reasoning of every degraded decision.
const FallbackPrefix = "classification unavailable"

// Fallback returns the safe catch-all decision used when the model call fails
// or its reply is unusable. Rule overrides still apply on top of it.
func Fallback(cause string) Decision {
	return Decision{
		Category:   CategoryTechnical,
		Priority:   PriorityHigh,
		Escalate:   true,
		Target:     rules.TargetSupportTeam,
		Confidence: 0,
		Reasoning:  FallbackPrefix + ": " + cause,
		Tags:       nil,
	}
}

// IsFallback reports whether d is a degraded decision.
func (d Decision) IsFallback() bool {
	return d.Confidence == 0 && strings.HasPrefix(d.Reasoning, FallbackPrefix)
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// ParseCategory maps a model-emitted label to a Category, tolerating case and
// separator variance.
func ParseCategory(s string) (Category, bool) {
	switch normalizeLabel(s) {
	case "billing":
		return CategoryBilling, true
	case "technical", "tech":
		return CategoryTechnical, true
	case "account":
		return CategoryAccount, true
	case "feature_request", "feature":
		return CategoryFeatureRequest, true
	case "churn":
		return CategoryChurn, true
	}
	return "", false
}

// ParsePriority maps a model-emitted label to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch normalizeLabel(s) {
	case "low":
		return PriorityLow, true
	case "medium", "normal":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "urgent", "critical":
		return PriorityUrgent, true
	}
	return "", false
}

// ParseTarget maps a model-emitted label to an escalation target. An empty
// label means no escalation target.
func ParseTarget(s string) (rules.Target, bool) {
	switch normalizeLabel(s) {
	case "", "none", "null":
		return rules.TargetNone, true
	case "support_team", "support":
		return rules.TargetSupportTeam, true
	case "account_manager":
		return rules.TargetAccountManager, true
	case "engineering":
		return rules.TargetEngineering, true
	case "billing":
		return rules.TargetBilling, true
	}
	return "", false
}
