package qecdlp

import (
	"fmt"
	"math/big"
)

// Point is an affine point on a short Weierstrass curve. Inf marks the
// point at infinity, the group identity.
type Point struct {
	X, Y *big.Int
	Inf  bool
}

// NewPoint builds an affine point from small coordinates.
func NewPoint(x, y int64) Point {
	return Point{X: big.NewInt(x), Y: big.NewInt(y)}
}

// Infinity returns the group identity.
func Infinity() Point {
	return Point{Inf: true}
}

// Equal reports whether two points are the same group element.
func (p Point) Equal(q Point) bool {
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

func (p Point) String() string {
	if p.Inf {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.X, p.Y)
}

// CurveParams describes the curve y² = x³ + Ax + B over F_P together with
// a generator, the generator's group order and the target public point
// Q = d·Generator whose discrete log d the pipeline recovers.
//
// CurveParams is read-only input for a whole run; nothing in the pipeline
// mutates it.
type CurveParams struct {
	P           *big.Int // field modulus (odd prime > 3)
	A           *big.Int // curve coefficient a
	B           *big.Int // curve coefficient b
	Order       *big.Int // order of Generator
	Generator   Point
	PublicPoint Point
}

// NumBits is the bit width of the field modulus, which fixes the size of
// every quantum register in the circuit.
func (c *CurveParams) NumBits() int {
	return c.P.BitLen()
}

// CircuitHandle is an opaque reference to a synthesized circuit. The
// synthesizer fills Payload with whatever its paired executor consumes (a
// serialized gate list for a remote service, a parameter blob for the
// simulator); the driver hands it through without looking inside.
type CircuitHandle struct {
	Payload []byte
	Qubits  int
	Ancilla int
}

// RegisterLayout records how a measured bitstring splits into the two
// phase-estimation registers. JBits is the high (most significant) half.
type RegisterLayout struct {
	JBits int
	KBits int
}

// Width is the total measured bitstring width.
func (l RegisterLayout) Width() int {
	return l.JBits + l.KBits
}

// Split divides a fixed-width bitstring (most significant bit first) into
// the two register values: j from the high JBits, k from the low KBits.
func (l RegisterLayout) Split(bits string) (j, k *big.Int, err error) {
	if l.JBits <= 0 || l.KBits <= 0 {
		return nil, nil, fmt.Errorf("register layout %d+%d has an empty register", l.JBits, l.KBits)
	}
	if len(bits) != l.Width() {
		return nil, nil, fmt.Errorf("bitstring %q has width %d, layout wants %d", bits, len(bits), l.Width())
	}
	j, ok := new(big.Int).SetString(bits[:l.JBits], 2)
	if !ok {
		return nil, nil, fmt.Errorf("bitstring %q is not binary", bits)
	}
	k, ok = new(big.Int).SetString(bits[l.JBits:], 2)
	if !ok {
		return nil, nil, fmt.Errorf("bitstring %q is not binary", bits)
	}
	return j, k, nil
}

// LayoutForCurve returns the register layout the circuit construction uses
// for the given curve: NumBits+1 bits per phase register.
func LayoutForCurve(params *CurveParams) RegisterLayout {
	m := params.NumBits() + 1
	return RegisterLayout{JBits: m, KBits: m}
}

// RecoveryResult is the outcome of one full pipeline run.
type RecoveryResult struct {
	PrivateKey *big.Int // verified discrete log of PublicPoint
	Ancilla    int      // ancilla count the synthesis succeeded with
	Probes     int      // synthesis attempts the search needed
	Outcome    string   // measured bitstring the key was decoded from
	// Shot tallies over the whole histogram: outcomes that decode to the
	// recovered key versus the rest.
	CorrectShots uint64
	WrongShots   uint64
	Verified     bool
}
