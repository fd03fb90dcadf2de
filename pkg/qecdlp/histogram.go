package qecdlp

import (
	"fmt"
	"sort"
)

// Histogram maps fixed-width measurement bitstrings (most significant bit
// first) to observed shot counts, exactly as an execution backend returns
// them.
type Histogram map[string]uint64

// Outcome is one ranked histogram entry.
type Outcome struct {
	Bits  string
	Count uint64
}

// TotalShots sums all observed counts.
func (h Histogram) TotalShots() uint64 {
	var total uint64
	for _, count := range h {
		total += count
	}
	return total
}

// Ranked returns the outcomes sorted by count descending, ties broken by
// ascending bitstring value. Fixed-width bitstrings make the lexicographic
// tie-break numeric, so decoding order never depends on map iteration
// order.
func (h Histogram) Ranked() []Outcome {
	out := make([]Outcome, 0, len(h))
	for bits, count := range h {
		out = append(out, Outcome{Bits: bits, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bits < out[j].Bits
	})
	return out
}

// Validate checks that every bitstring matches the layout's width and
// contains only 0/1 characters.
func (h Histogram) Validate(layout RegisterLayout) error {
	width := layout.Width()
	for bits := range h {
		if len(bits) != width {
			return fmt.Errorf("outcome %q has width %d, expected %d", bits, len(bits), width)
		}
		for _, ch := range bits {
			if ch != '0' && ch != '1' {
				return fmt.Errorf("outcome %q is not a bitstring", bits)
			}
		}
	}
	return nil
}
