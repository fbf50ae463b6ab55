package decision

// BatchStats aggregates a batch of decisions for the batch endpoint summary.
type BatchStats struct {
	Total          int              `json:"total"`
	ByCategory     map[Category]int `json:"by_category"`
	ByPriority     map[Priority]int `json:"by_priority"`
	Escalated      int              `json:"escalated"`
	EscalationRate float64          `json:"escalation_rate"`
	Degraded       int              `json:"degraded"`
}

// Summarize computes counts per category and priority plus the escalation
// rate over the whole batch.
func Summarize(decisions []Decision) BatchStats {
	stats := BatchStats{
		Total:      len(decisions),
		ByCategory: make(map[Category]int),
		ByPriority: make(map[Priority]int),
	}
	for _, d := range decisions {
		stats.ByCategory[d.Category]++
		stats.ByPriority[d.Priority]++
		if d.Escalate {
			stats.Escalated++
		}
		if d.IsFallback() {
			stats.Degraded++
		}
	}
	if stats.Total > 0 {
		stats.EscalationRate = float64(stats.Escalated) / float64(stats.Total)
	}
	return stats
}
