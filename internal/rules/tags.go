package rules

import "strings"

// keyword -> tag, checked in order so tag output is stable.
var tagTable = []struct {
	keyword string
	tag     string
}{
	{"login", "login"},
	{"log in", "login"},
	{"password", "login"},
	{"locked out", "login"},
	{"cancel", "churn_risk"},
	{"competitor", "churn_risk"},
	{"switching", "churn_risk"},
	{"refund", "billing"},
	{"invoice", "billing"},
	{"lawyer", "legal"},
	{"lawsuit", "legal"},
	{"legal action", "legal"},
	{"bug", "bug"},
	{"error", "bug"},
	{"crash", "bug"},
	{"broken", "bug"},
	{"urgent", "urgent"},
	{"asap", "urgent"},
	{"export", "data_loss"},
	{"data loss", "data_loss"},
}

// AutoTags derives tags from keyword hits in the ticket text, independent of
// whatever the model suggested. Output is de-duplicated, table order.
func AutoTags(text string) []string {
	text = strings.ToLower(text)
	var out []string
	seen := map[string]bool{}
	for _, e := range tagTable {
		if seen[e.tag] {
			continue
		}
		if strings.Contains(text, e.keyword) {
			out = append(out, e.tag)
			seen[e.tag] = true
		}
	}
	return out
}
