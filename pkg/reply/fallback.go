package reply

import (
	"math/rand/v2"

	"talk-to-legends-be/pkg/persona"
)

// FallbackSelector picks canned in-character text when no provider produced a reply.
type FallbackSelector struct {
	registry *persona.Registry
	pick     func(n int) int
}

func NewFallbackSelector(registry *persona.Registry) *FallbackSelector {
	return &FallbackSelector{registry: registry, pick: rand.IntN}
}

// WithPicker replaces the random source. pick must return a value in [0, n).
func (s *FallbackSelector) WithPicker(pick func(n int) int) *FallbackSelector {
	s.pick = pick
	return s
}

// Select returns one fallback paragraph for the persona, or from the default
// persona's pool when the id is unknown.
func (s *FallbackSelector) Select(personaID string) string {
	p := s.registry.Resolve(personaID)
	pool := p.Fallbacks
	if len(pool) == 0 {
		pool = s.registry.Default().Fallbacks
	}
	if len(pool) == 0 {
		return p.ShortDefault
	}
	return pool[s.pick(len(pool))]
}
