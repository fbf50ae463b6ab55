package decision

import (
	"errors"
	"testing"

	"triage/internal/rules"
)

func TestParseReplyCleanJSON(t *testing.T) {
	raw := `{"category":"ACCOUNT","priority":"URGENT","should_escalate":true,"escalate_to":"SUPPORT_TEAM","reasoning":"login failure with urgency","suggested_tags":["login","urgent"],"confidence":0.92}`
	d, err := ParseReply(raw)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if d.Category != CategoryAccount || d.Priority != PriorityUrgent {
		t.Fatalf("category/priority = %v/%v", d.Category, d.Priority)
	}
	if !d.Escalate || d.Target != rules.TargetSupportTeam {
		t.Fatalf("escalation = %v -> %v", d.Escalate, d.Target)
	}
	if d.Confidence != 92 {
		t.Fatalf("confidence = %d, want 92", d.Confidence)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "login" {
		t.Fatalf("tags = %v", d.Tags)
	}
}

func TestParseReplyFormattingVariance(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			"markdown json fence",
			"```json\n{\"category\":\"billing\",\"priority\":\"low\",\"should_escalate\":false,\"escalate_to\":null,\"reasoning\":\"simple invoice request\",\"suggested_tags\":[],\"confidence\":0.8}\n```",
		},
		{
			"bare fence",
			"```\n{\"category\":\"Billing\",\"priority\":\"Low\",\"should_escalate\":false,\"escalate_to\":null,\"reasoning\":\"ok\",\"suggested_tags\":[],\"confidence\":80}\n```",
		},
		{
			"surrounding prose",
			"Here is my classification:\n{\"category\":\"BILLING\",\"priority\":\"LOW\",\"should_escalate\":false,\"escalate_to\":null,\"reasoning\":\"ok\",\"suggested_tags\":[],\"confidence\":0.8}\nHope that helps!",
		},
		{
			"spaced enum labels",
			`{"category":" feature request ","priority":"MEDIUM","should_escalate":false,"escalate_to":"NONE","reasoning":"ok","suggested_tags":[],"confidence":0.5}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseReply(tt.raw)
			if err != nil {
				t.Fatalf("ParseReply: %v", err)
			}
			if d.Escalate {
				t.Fatal("unexpected escalation")
			}
			if d.Target != rules.TargetNone {
				t.Fatalf("target = %v, want none", d.Target)
			}
		})
	}
}

func TestParseReplyConfidenceScales(t *testing.T) {
	tests := []struct {
		name string
		conf string
		want int
	}{
		{"fraction", "0.75", 75},
		{"exact one", "1", 100},
		{"percentage", "85", 85},
		{"zero", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"category":"technical","priority":"high","should_escalate":true,"escalate_to":"engineering","reasoning":"x","suggested_tags":[],"confidence":` + tt.conf + `}`
			d, err := ParseReply(raw)
			if err != nil {
				t.Fatalf("ParseReply: %v", err)
			}
			if d.Confidence != tt.want {
				t.Fatalf("confidence = %d, want %d", d.Confidence, tt.want)
			}
		})
	}
}

func TestParseReplyFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no json", "I could not classify this ticket, sorry."},
		{"unknown category", `{"category":"spam","priority":"low","should_escalate":false,"escalate_to":null,"reasoning":"x","suggested_tags":[],"confidence":0.5}`},
		{"unknown priority", `{"category":"billing","priority":"whenever","should_escalate":false,"escalate_to":null,"reasoning":"x","suggested_tags":[],"confidence":0.5}`},
		{"unknown target", `{"category":"billing","priority":"low","should_escalate":true,"escalate_to":"the_ceo","reasoning":"x","suggested_tags":[],"confidence":0.5}`},
		{"confidence above range", `{"category":"billing","priority":"low","should_escalate":false,"escalate_to":null,"reasoning":"x","suggested_tags":[],"confidence":250}`},
		{"confidence negative", `{"category":"billing","priority":"low","should_escalate":false,"escalate_to":null,"reasoning":"x","suggested_tags":[],"confidence":-1}`},
		{"confidence missing", `{"category":"billing","priority":"low","should_escalate":false,"escalate_to":null,"reasoning":"x","suggested_tags":[]}`},
		{"truncated object", `{"category":"billing","priority":"low"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseReply(tt.raw); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("want ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestExtractJSONObjectSkipsStrings(t *testing.T) {
	raw := `{"category":"billing","priority":"low","should_escalate":false,"escalate_to":null,"reasoning":"customer wrote {angry}","suggested_tags":[],"confidence":0.6}`
	d, err := ParseReply(raw)
	if err != nil {
		t.Fatalf("ParseReply: %v", err)
	}
	if d.Reasoning != "customer wrote {angry}" {
		t.Fatalf("reasoning = %q", d.Reasoning)
	}
}
