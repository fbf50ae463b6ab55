// Package rules holds the deterministic escalation triggers that override
// model output. The table is built once at startup and shared read-only.
package rules

import (
	"fmt"
	"strings"
	"time"

	"triage/internal/pkg/format"
	"triage/internal/pkg/sliceutil"
	"triage/internal/ticket"
)

// Target enumerates the internal teams an escalated ticket can be routed to.
type Target string

const (
	TargetSupportTeam    Target = "support_team"
	TargetAccountManager Target = "account_manager"
	TargetEngineering    Target = "engineering"
	TargetBilling        Target = "billing"
	TargetNone           Target = "none"
)

// Trigger names a hard-rule family.
type Trigger string

const (
	TriggerSecurity   Trigger = "security"
	TriggerLegal      Trigger = "legal"
	TriggerChurn      Trigger = "churn"
	TriggerEnterprise Trigger = "enterprise"
	TriggerDuration   Trigger = "duration"
)

// Match records one fired trigger: which rule, where it routes, and why.
type Match struct {
	Trigger Trigger
	Target  Target
	Reason  string
}

var defaultTargets = map[Trigger]Target{
	TriggerSecurity:   TargetSupportTeam,
	TriggerLegal:      TargetAccountManager,
	TriggerChurn:      TargetAccountManager,
	TriggerEnterprise: TargetAccountManager,
	TriggerDuration:   TargetEngineering,
}

var (
	defaultSecurityKeywords = []string{"password", "login", "locked out", "log in", "credential", "2fa", "account access", "unauthorized"}
	defaultLegalKeywords    = []string{"lawyer", "lawsuit", "legal action", "attorney", "sue you"}
	defaultChurnKeywords    = []string{"cancel", "switching", "competitor", "refund", "downgrade"}
)

// Options tunes the rule table. Zero values fall back to the built-in lists.
type Options struct {
	SecurityKeywords []string
	LegalKeywords    []string
	ChurnKeywords    []string
	// TechnicalAge is the open-duration threshold for the technical trigger.
	TechnicalAge time.Duration
	// TargetOrder resolves the winning target when several triggers fire.
	// Entries are trigger names; unknown names are rejected.
	TargetOrder []string
}

// RuleSet is the immutable trigger table.
type RuleSet struct {
	security     []string
	legal        []string
	churn        []string
	technicalAge time.Duration
	order        []Trigger
}

// New builds a RuleSet from options, validating the precedence order.
func New(opts Options) (*RuleSet, error) {
	rs := &RuleSet{
		security:     pick(opts.SecurityKeywords, defaultSecurityKeywords),
		legal:        pick(opts.LegalKeywords, defaultLegalKeywords),
		churn:        pick(opts.ChurnKeywords, defaultChurnKeywords),
		technicalAge: opts.TechnicalAge,
	}
	if rs.technicalAge <= 0 {
		rs.technicalAge = 24 * time.Hour
	}
	order := opts.TargetOrder
	if len(order) == 0 {
		order = []string{"security", "legal", "churn", "enterprise", "duration"}
	}
	seen := map[Trigger]bool{}
	for _, name := range order {
		tr := Trigger(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := defaultTargets[tr]; !ok {
			return nil, fmt.Errorf("unknown trigger in target order: %q", name)
		}
		if seen[tr] {
			continue
		}
		seen[tr] = true
		rs.order = append(rs.order, tr)
	}
	// Triggers omitted from the configured order still fire, after the listed ones.
	for _, tr := range []Trigger{TriggerSecurity, TriggerLegal, TriggerChurn, TriggerEnterprise, TriggerDuration} {
		if !seen[tr] {
			rs.order = append(rs.order, tr)
		}
	}
	return rs, nil
}

func pick(custom, fallback []string) []string {
	if len(custom) > 0 {
		out := make([]string, 0, len(custom))
		for _, k := range custom {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				out = append(out, k)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return sliceutil.Strings(fallback)
}

// Evaluate checks every trigger against the ticket, independent of any model
// output. Matches come back in precedence order, so the first entry carries
// the winning target.
func (r *RuleSet) Evaluate(t ticket.Ticket, now time.Time) []Match {
	text := t.Text()
	tier, _ := ticket.NormalizeTier(t.CustomerTier)

	fired := map[Trigger]Match{}
	if kw := firstKeyword(text, r.security); kw != "" {
		fired[TriggerSecurity] = Match{TriggerSecurity, defaultTargets[TriggerSecurity], fmt.Sprintf("security keyword %q", kw)}
	}
	if kw := firstKeyword(text, r.legal); kw != "" {
		fired[TriggerLegal] = Match{TriggerLegal, defaultTargets[TriggerLegal], fmt.Sprintf("legal keyword %q", kw)}
	}
	if kw := firstKeyword(text, r.churn); kw != "" {
		fired[TriggerChurn] = Match{TriggerChurn, defaultTargets[TriggerChurn], fmt.Sprintf("churn keyword %q", kw)}
	}
	if tier == ticket.TierEnterprise {
		fired[TriggerEnterprise] = Match{TriggerEnterprise, defaultTargets[TriggerEnterprise], "enterprise customer"}
	}
	if age := t.Age(now); age >= r.technicalAge {
		fired[TriggerDuration] = Match{TriggerDuration, defaultTargets[TriggerDuration], "open for " + format.Duration(age)}
	}

	out := make([]Match, 0, len(fired))
	for _, tr := range r.order {
		if m, ok := fired[tr]; ok {
			out = append(out, m)
		}
	}
	return out
}

func firstKeyword(text string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}

// Describe renders the trigger table as prompt-ready bullet lines.
func (r *RuleSet) Describe() string {
	var b strings.Builder
	b.WriteString("1. CUSTOMER TIER TRIGGERS:\n")
	b.WriteString("   - Enterprise customers: ALWAYS escalate (regardless of issue)\n")
	b.WriteString("   - Pro customers: evaluate based on other criteria\n")
	b.WriteString("2. SECURITY TRIGGERS (ALWAYS escalate): ")
	b.WriteString(strings.Join(r.security, ", "))
	b.WriteString("\n3. RISK TRIGGERS (ALWAYS escalate):\n")
	b.WriteString("   - Churn threats: " + strings.Join(r.churn, ", ") + "\n")
	b.WriteString("   - Legal language: " + strings.Join(r.legal, ", ") + "\n")
	b.WriteString("   - Angry/hostile sentiment, financial disputes, refund requests\n")
	fmt.Fprintf(&b, "4. TECHNICAL TRIGGERS (ALWAYS escalate): bugs affecting operations for more than %d hours, data loss, export failures\n", int(r.technicalAge.Hours()))
	b.WriteString("5. CAN RESOLVE AUTONOMOUSLY: simple billing inquiries, feature requests (log and acknowledge), how-to questions, known system behaviors")
	return b.String()
}
