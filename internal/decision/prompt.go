package decision

import (
	"strings"
	"time"

	"triage/internal/rules"
	"triage/internal/ticket"
)

// PromptBuilder renders a ticket plus the rule table into the model prompt.
// Pure function of its inputs; the RuleSet is immutable and shared.
type PromptBuilder struct {
	Rules *rules.RuleSet
}

// Build returns the system and user prompts for one ticket. The only error is
// ticket validation failure.
func (b *PromptBuilder) Build(t ticket.Ticket) (system, user string, err error) {
	if err := t.Validate(); err != nil {
		return "", "", err
	}
	return b.systemPrompt(), b.userPrompt(t), nil
}

func (b *PromptBuilder) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a customer support ticket classification agent for FlowTask, a project management SaaS platform.\n\n")
	sb.WriteString("CLASSIFICATION RULES:\n\n")
	sb.WriteString(b.Rules.Describe())
	sb.WriteString("\n\nOUTPUT FORMAT:\n")
	sb.WriteString("Respond with ONLY valid JSON in this exact format:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "category": "BILLING|TECHNICAL|ACCOUNT|FEATURE_REQUEST|CHURN",` + "\n")
	sb.WriteString(`  "priority": "LOW|MEDIUM|HIGH|URGENT",` + "\n")
	sb.WriteString(`  "should_escalate": true or false,` + "\n")
	sb.WriteString(`  "escalate_to": "SUPPORT_TEAM|ACCOUNT_MANAGER|ENGINEERING|BILLING" or null,` + "\n")
	sb.WriteString(`  "reasoning": "Brief explanation of classification decision",` + "\n")
	sb.WriteString(`  "suggested_tags": ["tag1", "tag2", "tag3"],` + "\n")
	sb.WriteString(`  "confidence": 0.0 to 1.0` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("CRITICAL: Output ONLY the JSON object. No markdown formatting, no other text before or after.")
	return sb.String()
}

func (b *PromptBuilder) userPrompt(t ticket.Ticket) string {
	tier, _ := ticket.NormalizeTier(t.CustomerTier)
	var sb strings.Builder
	sb.WriteString("Now classify this customer support ticket:\n\n")
	sb.WriteString("Ticket ID: " + t.ID + "\n")
	sb.WriteString("Subject: " + t.Subject + "\n")
	sb.WriteString("Description: " + t.Description + "\n")
	sb.WriteString("Customer Email: " + t.CustomerEmail + "\n")
	sb.WriteString("Customer Tier: " + string(tier) + "\n")
	if !t.CreatedAt.IsZero() {
		sb.WriteString("Created: " + t.CreatedAt.UTC().Format(time.RFC3339) + "\n")
	}
	sb.WriteString("\nProvide classification in JSON format.")
	return sb.String()
}
