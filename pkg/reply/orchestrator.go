package reply

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/pkg/llm"
	"talk-to-legends-be/pkg/persona"
)

const DefaultMinLength = 50

// Tier names the stage that produced the final text.
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierFallback  Tier = "fallback"
)

var errNoProvider = errors.New("no provider configured")

// Outcome is the result of a single generation attempt.
// Exactly one of Text or Err is meaningful.
type Outcome struct {
	Text string
	Err  error
}

func Generated(text string) Outcome { return Outcome{Text: text} }
func Failed(err error) Outcome      { return Outcome{Err: err} }

func (o Outcome) Ok() bool { return o.Err == nil }

// Result is what the orchestrator hands back to callers.
type Result struct {
	Text string
	Tier Tier
	// Shortened is true when the generated text was replaced by the persona's short default.
	Shortened bool
	Failures  map[Tier]error
}

type Orchestrator struct {
	registry  *persona.Registry
	primary   llm.LLMProvider
	secondary llm.LLMProvider
	fallback  *FallbackSelector
	minLength int
	logger    logger.ILogger
}

// NewOrchestrator builds the reply pipeline. primary and secondary may be nil,
// which is treated as a failed attempt at that tier.
func NewOrchestrator(
	registry *persona.Registry,
	primary llm.LLMProvider,
	secondary llm.LLMProvider,
	fallback *FallbackSelector,
	minLength int,
	logger logger.ILogger,
) *Orchestrator {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if fallback == nil {
		fallback = NewFallbackSelector(registry)
	}
	return &Orchestrator{
		registry:  registry,
		primary:   primary,
		secondary: secondary,
		fallback:  fallback,
		minLength: minLength,
		logger:    logger,
	}
}

// Reply never fails. Provider errors are recorded in Result.Failures and logged.
func (o *Orchestrator) Reply(ctx context.Context, personaID, message string) Result {
	p := o.registry.Resolve(personaID)
	history := []llm.Message{
		{Role: llm.RoleSystem, Content: p.Instruction},
		{Role: llm.RoleUser, Content: message},
	}

	res := Result{Failures: map[Tier]error{}}

	out := o.attempt(ctx, o.primary, history)
	res.Tier = TierPrimary
	if !out.Ok() {
		res.Failures[TierPrimary] = out.Err
		o.logFailure(personaID, TierPrimary, out.Err)

		out = o.attempt(ctx, o.secondary, history)
		res.Tier = TierSecondary
	}
	if !out.Ok() {
		res.Failures[TierSecondary] = out.Err
		o.logFailure(personaID, TierSecondary, out.Err)

		out = Generated(o.fallback.Select(personaID))
		res.Tier = TierFallback
	}

	res.Text, res.Shortened = o.validate(p, out.Text)
	return res
}

func (o *Orchestrator) attempt(ctx context.Context, provider llm.LLMProvider, history []llm.Message) Outcome {
	if provider == nil {
		return Failed(errNoProvider)
	}
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}
	text, err := provider.Chat(ctx, history)
	if err != nil {
		return Failed(err)
	}
	if strings.TrimSpace(text) == "" {
		return Failed(llm.ErrMalformedResponse)
	}
	return Generated(text)
}

func (o *Orchestrator) validate(p persona.Persona, text string) (string, bool) {
	cleaned := Clean(text)
	if utf8.RuneCountInString(cleaned) < o.minLength {
		short := p.ShortDefault
		if short == "" {
			short = o.registry.Default().ShortDefault
		}
		return short, true
	}
	return cleaned, false
}

func (o *Orchestrator) logFailure(personaID string, tier Tier, err error) {
	if o.logger == nil {
		return
	}
	o.logger.Warn("REPLY", "Completion attempt failed", map[string]interface{}{
		"persona": personaID,
		"tier":    string(tier),
		"error":   err.Error(),
	})
}

var leadingRoleToken = regexp.MustCompile(`(?i)^\s*(human|response|assistant)\s*:`)

// Clean strips leading conversational role markers and surrounding whitespace.
func Clean(text string) string {
	for {
		loc := leadingRoleToken.FindStringIndex(text)
		if loc == nil {
			break
		}
		text = text[loc[1]:]
	}
	return strings.TrimSpace(text)
}
