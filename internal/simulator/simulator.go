// Package simulator provides an in-process synthesizer/executor pair that
// stands in for a remote quantum backend on small curves. Synthesis
// enforces a realistic minimum-ancilla rule; execution computes the
// discrete log classically (the curves are tiny) and samples the ideal
// phase-estimation peaks, optionally mixed with deterministic noise. It
// gives the CLI an offline mode and the tests a full pipeline.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/qdaylab/qecdlp/pkg/qecdlp"
)

// MaxBits caps the modulus size the simulator accepts; the classical
// brute force below is linear in the group order.
const MaxBits = 24

// MinAncilla returns the helper-qubit count the windowed modular
// point-addition construction needs for an n-bit modulus.
func MinAncilla(bits int) int {
	return 2*bits + 4
}

// Backend implements both qecdlp.Synthesizer and qecdlp.Executor.
type Backend struct {
	// NoisePercent spreads this share of the shots (0-100) uniformly
	// over random outcomes instead of the ideal peaks.
	NoisePercent int

	// Seed drives the deterministic noise sampler.
	Seed int64

	// Peaks is how many distinct register multiples v contribute ideal
	// peaks (default 8).
	Peaks int
}

// New returns a noise-free simulator.
func New() *Backend {
	return &Backend{Seed: 1, Peaks: 8}
}

// circuitSpec is the simulator's circuit payload: enough of the problem
// to re-derive the histogram on the execution side. All integers travel
// as decimal strings to stay exact.
type circuitSpec struct {
	Prime   string `json:"prime"`
	A       string `json:"a"`
	B       string `json:"b"`
	Order   string `json:"order"`
	Gx      string `json:"gx"`
	Gy      string `json:"gy"`
	Qx      string `json:"qx"`
	Qy      string `json:"qy"`
	JBits   int    `json:"j_bits"`
	KBits   int    `json:"k_bits"`
	Ancilla int    `json:"ancilla"`
}

// Synthesize models circuit construction: parameter validation, the
// ancilla requirement, and a size cutoff beyond which the construction is
// unsupported.
func (b *Backend) Synthesize(ctx context.Context, params *qecdlp.CurveParams, ancilla int) (*qecdlp.CircuitHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, &qecdlp.StructuralError{Reason: err.Error()}
	}
	bits := params.NumBits()
	if bits > MaxBits {
		return nil, &qecdlp.StructuralError{
			Reason: fmt.Sprintf("modulus has %d bits, simulator supports up to %d", bits, MaxBits),
		}
	}
	if params.PublicPoint.Inf {
		return nil, &qecdlp.StructuralError{Reason: "public point is the identity"}
	}
	if ancilla < MinAncilla(bits) {
		return nil, &qecdlp.InsufficientAncillaError{Ancilla: ancilla}
	}

	layout := qecdlp.LayoutForCurve(params)
	spec := circuitSpec{
		Prime:   params.P.String(),
		A:       params.A.String(),
		B:       params.B.String(),
		Order:   params.Order.String(),
		Gx:      params.Generator.X.String(),
		Gy:      params.Generator.Y.String(),
		Qx:      params.PublicPoint.X.String(),
		Qy:      params.PublicPoint.Y.String(),
		JBits:   layout.JBits,
		KBits:   layout.KBits,
		Ancilla: ancilla,
	}
	payload, err := json.Marshal(spec)
	if err != nil {
		return nil, &qecdlp.StructuralError{Reason: err.Error()}
	}
	return &qecdlp.CircuitHandle{
		Payload: payload,
		Qubits:  layout.Width() + 2*bits + ancilla,
		Ancilla: ancilla,
	}, nil
}

// Execute samples a histogram for the circuit: the exact shot budget
// distributed over the ideal peaks of the encoded problem, with the
// configured share diverted to uniform noise.
func (b *Backend) Execute(ctx context.Context, circuit *qecdlp.CircuitHandle, shots uint64) (qecdlp.Histogram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var spec circuitSpec
	if err := json.Unmarshal(circuit.Payload, &spec); err != nil {
		return nil, fmt.Errorf("malformed circuit payload: %w", err)
	}
	params, layout, err := spec.reconstruct()
	if err != nil {
		return nil, err
	}

	key, err := bruteForceDlog(params)
	if err != nil {
		return nil, err
	}

	noise := shots * uint64(clampPercent(b.NoisePercent)) / 100
	clean := shots - noise

	vs := peakMultiples(params.Order, b.Peaks)
	hist := make(qecdlp.Histogram)
	per := clean / uint64(len(vs))
	for i, v := range vs {
		bits, err := qecdlp.EncodePeak(params, layout, key, v)
		if err != nil {
			return nil, err
		}
		n := per
		if i == 0 {
			n += clean % uint64(len(vs))
		}
		if n > 0 {
			hist[bits] += n
		}
	}

	rng := rand.New(rand.NewSource(b.Seed))
	width := layout.Width()
	for n := uint64(0); n < noise; n++ {
		outcome := make([]byte, width)
		for i := range outcome {
			outcome[i] = byte('0' + rng.Intn(2))
		}
		hist[string(outcome)]++
	}
	return hist, nil
}

func (s *circuitSpec) reconstruct() (*qecdlp.CurveParams, qecdlp.RegisterLayout, error) {
	layout := qecdlp.RegisterLayout{JBits: s.JBits, KBits: s.KBits}
	fields := map[string]string{
		"prime": s.Prime, "a": s.A, "b": s.B, "order": s.Order,
		"gx": s.Gx, "gy": s.Gy, "qx": s.Qx, "qy": s.Qy,
	}
	parsed := make(map[string]*big.Int, len(fields))
	for name, text := range fields {
		z, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, layout, fmt.Errorf("circuit payload field %s is not an integer: %q", name, text)
		}
		parsed[name] = z
	}
	params := &qecdlp.CurveParams{
		P:           parsed["prime"],
		A:           parsed["a"],
		B:           parsed["b"],
		Order:       parsed["order"],
		Generator:   qecdlp.Point{X: parsed["gx"], Y: parsed["gy"]},
		PublicPoint: qecdlp.Point{X: parsed["qx"], Y: parsed["qy"]},
	}
	return params, layout, nil
}

// bruteForceDlog scans d·G until it hits the public point. Linear in the
// group order; MaxBits keeps it tractable.
func bruteForceDlog(params *qecdlp.CurveParams) (*big.Int, error) {
	acc := qecdlp.Infinity()
	d := new(big.Int)
	one := big.NewInt(1)
	for d.Cmp(params.Order) < 0 {
		if acc.Equal(params.PublicPoint) {
			return new(big.Int).Set(d), nil
		}
		acc = params.Add(acc, params.Generator)
		d.Add(d, one)
	}
	return nil, fmt.Errorf("public point is not a multiple of the generator")
}

// peakMultiples returns the first count register multiples v that are
// invertible mod order, v = 1 always included.
func peakMultiples(order *big.Int, count int) []*big.Int {
	if count <= 0 {
		count = 8
	}
	var out []*big.Int
	gcd := new(big.Int)
	for v := int64(1); len(out) < count && big.NewInt(v).Cmp(order) < 0; v++ {
		vv := big.NewInt(v)
		if gcd.GCD(nil, nil, vv, order).Cmp(big.NewInt(1)) == 0 {
			out = append(out, vv)
		}
	}
	if len(out) == 0 {
		out = []*big.Int{big.NewInt(1)}
	}
	return out
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
