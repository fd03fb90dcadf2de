package qecdlp

import (
	"context"
	"errors"
	"fmt"
)

// Synthesizer builds a circuit for the given curve within an ancilla
// budget. Implementations return *InsufficientAncillaError when only the
// budget is the problem; any other error means retrying with more ancilla
// cannot help and aborts the search.
type Synthesizer interface {
	Synthesize(ctx context.Context, params *CurveParams, ancilla int) (*CircuitHandle, error)
}

// SearchConfig configures the ancilla probing loop.
type SearchConfig struct {
	// StartGuess is the first ancilla count probed. A guess below the
	// true minimum only costs extra probes, never correctness; a
	// known-good guess makes the search succeed on the first probe.
	StartGuess int

	// MaxProbes bounds the total number of synthesis attempts. Zero
	// permits no probes at all.
	MaxProbes int

	// Step is the linear increment between probes (default 1).
	Step int
}

// DefaultSearchConfig returns the probing bounds used by the reference
// runs on the small challenge curves.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		StartGuess: 1,
		MaxProbes:  300,
		Step:       1,
	}
}

// SearchResult is a successful search: the synthesized circuit, the
// ancilla count that worked and how many probes it took.
type SearchResult struct {
	Circuit *CircuitHandle
	Ancilla int
	Probes  int
}

// AncillaSearcher finds the first ancilla count the synthesizer accepts,
// so callers never need to know the exact requirement in advance.
type AncillaSearcher struct {
	Config SearchConfig
	synth  Synthesizer
}

// NewAncillaSearcher creates a searcher with default bounds.
func NewAncillaSearcher(synth Synthesizer) *AncillaSearcher {
	return &AncillaSearcher{Config: DefaultSearchConfig(), synth: synth}
}

// WithConfig sets the probing bounds.
func (s *AncillaSearcher) WithConfig(config SearchConfig) *AncillaSearcher {
	s.Config = config
	return s
}

// Search probes ancilla counts monotonically upward from the start guess.
// Each count is tried at most once. Synthesis can be slow, so the probe
// sequence is strictly increasing and bounded: insufficient-ancilla
// failures move to the next count (or jump to the synthesizer's hint when
// it is larger), any other failure aborts immediately, and hitting
// MaxProbes yields a typed *SearchExhaustedError.
func (s *AncillaSearcher) Search(ctx context.Context, params *CurveParams) (*SearchResult, error) {
	if s.synth == nil {
		return nil, fmt.Errorf("no synthesizer configured")
	}
	start := s.Config.StartGuess
	if start < 0 {
		start = 0
	}
	step := s.Config.Step
	if step <= 0 {
		step = 1
	}

	ancilla := start
	last := start
	probes := 0
	for probes < s.Config.MaxProbes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		last = ancilla
		circuit, err := s.synth.Synthesize(ctx, params, ancilla)
		probes++
		if err == nil {
			return &SearchResult{Circuit: circuit, Ancilla: ancilla, Probes: probes}, nil
		}
		var insufficient *InsufficientAncillaError
		if !errors.As(err, &insufficient) {
			return nil, fmt.Errorf("synthesis aborted at %d ancilla: %w", ancilla, err)
		}
		next := ancilla + step
		if insufficient.Hint > next {
			next = insufficient.Hint
		}
		ancilla = next
	}
	return nil, &SearchExhaustedError{Start: start, Last: last, Probes: probes}
}
