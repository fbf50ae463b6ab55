// Package ticket defines the support-request model consumed by the
// classification pipeline.
package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tier enumerates customer plans. Rule evaluation treats unknown tiers as
// Free, the most conservative plan.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// NormalizeTier maps arbitrary input to a known tier. The second return is
// false when the input was not recognized and Free was substituted; callers
// must surface that substitution rather than hide it.
func NormalizeTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return TierFree, true
	case "pro", "professional":
		return TierPro, true
	case "enterprise":
		return TierEnterprise, true
	}
	return TierFree, false
}

// Ticket is a support request submitted for classification. It is immutable
// once received; the pipeline reads it and never writes back.
type Ticket struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	CustomerTier  string    `json:"customer_tier"`
	CustomerEmail string    `json:"customer_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrValidation marks malformed ticket input. It is the only error the
// classification path surfaces to callers; everything else degrades to a
// fallback decision.
var ErrValidation = errors.New("invalid ticket")

// Validate checks the required free-text fields.
func (t Ticket) Validate() error {
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// EnsureID fills a missing identifier with a generated UUID.
func (t *Ticket) EnsureID() {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.NewString()
	}
}

// Age reports how long the ticket has been open at the given instant.
// Zero CreatedAt means unknown and yields zero.
func (t Ticket) Age(now time.Time) time.Duration {
	if t.CreatedAt.IsZero() || now.Before(t.CreatedAt) {
		return 0
	}
	return now.Sub(t.CreatedAt)
}

// Text returns the searchable free text of the ticket, lowercased.
func (t Ticket) Text() string {
	return strings.ToLower(t.Subject + " " + t.Description)
}
