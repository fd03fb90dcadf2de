package qecdlp

import (
	"fmt"
	"math/big"
)

// DecoderConfig bounds the classical post-processing work.
type DecoderConfig struct {
	// TopK limits decoding to the most frequent outcomes. 0 decodes all.
	TopK int
	// MaxCandidates caps the total number of candidate keys verified
	// across all outcomes. 0 means no cap.
	MaxCandidates int
}

// DefaultDecoderConfig matches the topK budget of the reference
// experiments on the small challenge curves.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		TopK:          100,
		MaxCandidates: 4096,
	}
}

// Decoder turns a measurement histogram into a verified discrete log. The
// histogram is treated as untrusted, noisy data: every candidate is
// checked against the public point with exact curve arithmetic, and the
// decoder never returns an unverified key.
type Decoder struct {
	Config DecoderConfig
}

// NewDecoder creates a decoder with default settings.
func NewDecoder() *Decoder {
	return &Decoder{Config: DefaultDecoderConfig()}
}

// WithConfig sets the decoding bounds.
func (d *Decoder) WithConfig(config DecoderConfig) *Decoder {
	d.Config = config
	return d
}

// DecodedKey is a successful decode: the verified key and the histogram
// entry it came from.
type DecodedKey struct {
	Key     *big.Int
	Outcome Outcome
}

// Decode ranks the histogram (count descending, bitstring ascending),
// derives candidate discrete logs from each outcome's register pair and
// returns the first candidate k with k·Generator == PublicPoint.
//
// Given an identical histogram and identical parameters the result is
// identical every time; nothing here depends on map iteration order.
func (d *Decoder) Decode(hist Histogram, params *CurveParams, layout RegisterLayout) (*DecodedKey, error) {
	if params.Order == nil || params.Order.Sign() <= 0 {
		return nil, fmt.Errorf("curve order must be positive")
	}
	if err := hist.Validate(layout); err != nil {
		return nil, fmt.Errorf("bad histogram: %w", err)
	}

	ranked := hist.Ranked()
	if d.Config.TopK > 0 && len(ranked) > d.Config.TopK {
		ranked = ranked[:d.Config.TopK]
	}

	checked := 0
	for _, outcome := range ranked {
		j, k, err := layout.Split(outcome.Bits)
		if err != nil {
			return nil, err
		}
		for _, cand := range d.candidates(j, k, params, layout) {
			if d.Config.MaxCandidates > 0 && checked >= d.Config.MaxCandidates {
				return nil, &RecoveryFailedError{Outcomes: len(ranked), Candidates: checked}
			}
			checked++
			if params.ScalarMult(params.Generator, cand).Equal(params.PublicPoint) {
				return &DecodedKey{Key: cand, Outcome: outcome}, nil
			}
		}
	}
	return nil, &RecoveryFailedError{Outcomes: len(ranked), Candidates: checked}
}

// candidates derives candidate discrete logs from one (j, k) register
// pair. Peaks of the two-register phase estimation satisfy
// u + d·v ≡ 0 (mod order) with j ≈ u·2^JBits/order and
// k ≈ v·2^KBits/order, so d = −u·v⁻¹ mod order. The mirrored sign
// d = u·v⁻¹ is kept as well since the backend's phase convention is not
// trusted.
func (d *Decoder) candidates(j, k *big.Int, params *CurveParams, layout RegisterLayout) []*big.Int {
	order := params.Order
	us := phaseCandidates(j, layout.JBits, order)
	vs := phaseCandidates(k, layout.KBits, order)

	var out []*big.Int
	seen := make(map[string]bool)
	add := func(x *big.Int) {
		if !seen[x.String()] {
			seen[x.String()] = true
			out = append(out, x)
		}
	}
	for _, v := range vs {
		if v.Sign() == 0 {
			continue
		}
		vInv := new(big.Int).ModInverse(v, order)
		if vInv == nil {
			continue
		}
		for _, u := range us {
			neg := new(big.Int).Neg(u)
			neg.Mul(neg, vInv)
			neg.Mod(neg, order)
			add(neg)

			pos := new(big.Int).Mul(u, vInv)
			pos.Mod(pos, order)
			add(pos)
		}
	}
	return out
}

// Tally classifies the histogram's shots by whether their outcome decodes
// to the recovered key, mirroring the correct/wrong accounting of the
// reference experiments. It re-ranks already-returned data only; no
// backend call happens here.
func (d *Decoder) Tally(hist Histogram, params *CurveParams, layout RegisterLayout, key *big.Int) (correct, wrong uint64) {
	for _, outcome := range hist.Ranked() {
		j, k, err := layout.Split(outcome.Bits)
		if err != nil {
			wrong += outcome.Count
			continue
		}
		matched := false
		for _, cand := range d.candidates(j, k, params, layout) {
			if cand.Cmp(key) == 0 {
				matched = true
				break
			}
		}
		if matched {
			correct += outcome.Count
		} else {
			wrong += outcome.Count
		}
	}
	return correct, wrong
}
