package decision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"triage/internal/gateway/provider"
	"triage/internal/logger"
	"triage/internal/pkg/jsonutil"
	"triage/internal/pkg/text"
	"triage/internal/rules"
	"triage/internal/ticket"
)

// Interpreter owns the request/response cycle with the external model and
// turns its free-text reply into a rule-validated Decision. Every model
// failure degrades to a fallback decision; only ticket validation errors
// surface to the caller.
type Interpreter struct {
	provider provider.ModelProvider
	rules    *rules.RuleSet
	prompt   *PromptBuilder
	timeout  time.Duration
	parallel int

	// now is swapped in tests for deterministic duration-trigger checks.
	now func() time.Time
}

// Option tunes an Interpreter.
type Option func(*Interpreter)

// WithTimeout bounds each external model call.
func WithTimeout(d time.Duration) Option {
	return func(it *Interpreter) {
		if d > 0 {
			it.timeout = d
		}
	}
}

// WithBatchParallelism bounds the batch fan-out; 1 means sequential.
func WithBatchParallelism(n int) Option {
	return func(it *Interpreter) {
		if n > 0 {
			it.parallel = n
		}
	}
}

// WithClock overrides the time source used for the duration trigger.
func WithClock(now func() time.Time) Option {
	return func(it *Interpreter) {
		if now != nil {
			it.now = now
		}
	}
}

func NewInterpreter(p provider.ModelProvider, rs *rules.RuleSet, opts ...Option) *Interpreter {
	it := &Interpreter{
		provider: p,
		rules:    rs,
		prompt:   &PromptBuilder{Rules: rs},
		timeout:  30 * time.Second,
		parallel: 4,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Classify runs the full pipeline for one ticket:
// prompt -> model -> parse (or fallback) -> rule override -> auto-tags.
func (it *Interpreter) Classify(ctx context.Context, t ticket.Ticket) (Decision, error) {
	system, user, err := it.prompt.Build(t)
	if err != nil {
		return Decision{}, err
	}

	_, tierKnown := ticket.NormalizeTier(t.CustomerTier)

	d, degraded := it.invokeModel(ctx, t, system, user)
	it.applyRules(&d, t)
	it.mergeTags(&d, t)
	if !tierKnown && t.CustomerTier != "" {
		d.Reasoning = appendNote(d.Reasoning, fmt.Sprintf("unknown customer tier %q treated as free", t.CustomerTier))
	}
	if degraded {
		logger.Infof("ticket %s: degraded decision (%s)", t.ID, d.Reasoning)
	}
	return d, nil
}

// invokeModel calls the provider and parses the reply, returning a fallback
// decision (and degraded=true) on any modeled failure.
func (it *Interpreter) invokeModel(ctx context.Context, t ticket.Ticket, system, user string) (Decision, bool) {
	if it.provider == nil || !it.provider.Enabled() {
		return Fallback("no model provider configured"), true
	}

	callCtx, cancel := context.WithTimeout(ctx, it.timeout)
	defer cancel()
	raw, err := it.provider.Call(callCtx, provider.ChatPayload{System: system, User: user, ExpectJSON: true})
	if err != nil {
		logger.Warnf("ticket %s: model call failed: %v", t.ID, err)
		return Fallback(causeOf(err)), true
	}
	logger.Debugf("ticket %s: raw model reply: %s", t.ID, text.Truncate(jsonutil.Pretty(raw), 2000))

	d, err := ParseReply(raw)
	if err != nil {
		logger.Warnf("ticket %s: %v", t.ID, err)
		return Fallback(causeOf(err)), true
	}
	return d, false
}

// applyRules enforces the hard triggers regardless of what the model said.
func (it *Interpreter) applyRules(d *Decision, t ticket.Ticket) {
	matches := it.rules.Evaluate(t, it.now())
	if len(matches) == 0 {
		return
	}
	winner := matches[0]
	overridden := !d.Escalate || d.Target != winner.Target
	d.Escalate = true
	d.Target = winner.Target

	reasons := make([]string, 0, len(matches))
	for _, m := range matches {
		reasons = append(reasons, m.Reason)
	}
	if overridden {
		d.Reasoning = appendNote(d.Reasoning, fmt.Sprintf("escalation enforced by rule (%s)", strings.Join(reasons, "; ")))
	}
}

// mergeTags appends rule-derived tags after the model's own, de-duplicated
// with original order preserved.
func (it *Interpreter) mergeTags(d *Decision, t ticket.Ticket) {
	auto := rules.AutoTags(t.Subject + " " + t.Description)
	if len(auto) == 0 {
		return
	}
	seen := map[string]bool{}
	merged := make([]string, 0, len(d.Tags)+len(auto))
	for _, tags := range [][]string{d.Tags, auto} {
		for _, tag := range tags {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, tag)
		}
	}
	d.Tags = merged
}

// ClassifyBatch classifies tickets with bounded fan-out. Output order always
// matches input order, and per-ticket failures (including validation errors)
// degrade in place instead of aborting the batch.
func (it *Interpreter) ClassifyBatch(ctx context.Context, tickets []ticket.Ticket) []Decision {
	out := make([]Decision, len(tickets))
	g := new(errgroup.Group)
	g.SetLimit(it.parallel)
	for i, t := range tickets {
		g.Go(func() error {
			d, err := it.Classify(ctx, t)
			if err != nil {
				d = Fallback(causeOf(err))
				it.applyRules(&d, t)
				it.mergeTags(&d, t)
			}
			out[i] = d
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// causeOf maps a typed failure to the short cause recorded in fallback
// reasoning.
func causeOf(err error) string {
	switch {
	case errors.Is(err, provider.ErrAuth):
		return "authentication error"
	case errors.Is(err, provider.ErrRateLimited):
		return "rate limited"
	case errors.Is(err, provider.ErrEmptyResponse):
		return "empty response"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed response"
	case errors.Is(err, ticket.ErrValidation):
		return err.Error()
	case errors.Is(err, provider.ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return "network error"
	default:
		return err.Error()
	}
}

func appendNote(reasoning, note string) string {
	if strings.TrimSpace(reasoning) == "" {
		return note
	}
	return reasoning + " [" + note + "]"
}
