package typing

import (
	"math"
	"math/rand"
)

// Simulator computes a human-like typing delay from message length and a
// words-per-minute rate. Mention text is heavily discounted because it
// renders as a short chip rather than literal characters.
type Simulator struct {
	wpm            float64
	minSeconds     float64
	maxSeconds     float64
	jitterFraction float64
	randFloat      func() float64
}

// NewSimulator creates a simulator with the default randomness source
func NewSimulator(wpm, minSeconds, maxSeconds, jitterFraction float64) *Simulator {
	return NewSimulatorWithRand(wpm, minSeconds, maxSeconds, jitterFraction, rand.Float64)
}

// NewSimulatorWithRand creates a simulator with an injectable randomness
// source; randFloat must return values in [0, 1)
func NewSimulatorWithRand(
	wpm, minSeconds, maxSeconds, jitterFraction float64,
	randFloat func() float64,
) *Simulator {
	return &Simulator{
		wpm:            wpm,
		minSeconds:     minSeconds,
		maxSeconds:     maxSeconds,
		jitterFraction: jitterFraction,
		randFloat:      randFloat,
	}
}

// EstimateDelay returns the typing delay in seconds for a text and its
// mention tokens. The result is always within [minSeconds, maxSeconds] for
// any text length and any jitter draw.
func (s *Simulator) EstimateDelay(text string, mentions []string) float64 {
	cps := (s.wpm * 5.0) / 60.0

	mentionChars := 0
	for _, m := range mentions {
		mentionChars += len(m)
	}
	adjustedLen := float64(len(text)) - float64(mentionChars)*0.75

	base := adjustedLen / math.Max(cps, 1e-6)
	base = s.clamp(base)

	jitter := base * s.jitterFraction
	// uniform draw in [-jitter, +jitter)
	final := base + (s.randFloat()*2-1)*jitter

	return s.clamp(final)
}

func (s *Simulator) clamp(seconds float64) float64 {
	return math.Max(s.minSeconds, math.Min(s.maxSeconds, seconds))
}
