package ticket

import "time"

// Samples returns the fixed demo set used by the batch endpoint when no
// tickets are posted. The mix covers each trigger family: security, enterprise
// tier, churn risk, a plain feature request, and a long-running technical bug.
func Samples(now time.Time) []Ticket {
	return []Ticket{
		{
			ID:            "TICK-001",
			Subject:       "Can't log in",
			Description:   "Password reset not working, need access urgently",
			CustomerTier:  "pro",
			CustomerEmail: "sarah@techstartup.io",
			CreatedAt:     now.Add(-30 * time.Minute),
		},
		{
			ID:            "TICK-002",
			Subject:       "Invoice request",
			Description:   "Please send a copy of last month's invoice for our records",
			CustomerTier:  "enterprise",
			CustomerEmail: "billing@bigcorp.com",
			CreatedAt:     now.Add(-2 * time.Hour),
		},
		{
			ID:            "TICK-003",
			Subject:       "Thinking about leaving",
			Description:   "Your competitor offers the same features for half the price. We may cancel our subscription this month.",
			CustomerTier:  "pro",
			CustomerEmail: "ops@midmarket.co",
			CreatedAt:     now.Add(-4 * time.Hour),
		},
		{
			ID:            "TICK-004",
			Subject:       "Dark mode please",
			Description:   "Would love a dark mode option for the dashboard, the white background is hard on the eyes at night",
			CustomerTier:  "free",
			CustomerEmail: "indie@maker.dev",
			CreatedAt:     now.Add(-1 * time.Hour),
		},
		{
			ID:            "TICK-005",
			Subject:       "CSV export broken since yesterday",
			Description:   "Exports fail with an error page. This is blocking our weekly reporting and has been down for over a day.",
			CustomerTier:  "pro",
			CustomerEmail: "data@agency.net",
			CreatedAt:     now.Add(-30 * time.Hour),
		},
	}
}
