package qecdlp

import (
	"fmt"
	"math/big"
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

// IsOnCurve reports whether pt satisfies y² ≡ x³ + Ax + B (mod P). The
// point at infinity is on every curve.
func (c *CurveParams) IsOnCurve(pt Point) bool {
	if pt.Inf {
		return true
	}
	left := new(big.Int).Mul(pt.Y, pt.Y)
	left.Mod(left, c.P)

	right := new(big.Int).Mul(pt.X, pt.X)
	right.Mul(right, pt.X)
	right.Add(right, new(big.Int).Mul(c.A, pt.X))
	right.Add(right, c.B)
	right.Mod(right, c.P)

	return left.Cmp(right) == 0
}

// Add implements the affine chord-and-tangent group law. All arithmetic is
// exact big.Int arithmetic mod P; there is no floating point anywhere in
// the verification path.
func (c *CurveParams) Add(p1, p2 Point) Point {
	if p1.Inf {
		return p2
	}
	if p2.Inf {
		return p1
	}
	if p1.X.Cmp(p2.X) == 0 {
		ysum := new(big.Int).Add(p1.Y, p2.Y)
		ysum.Mod(ysum, c.P)
		if ysum.Sign() == 0 {
			// p2 == -p1, covers the vertical tangent at y == 0
			return Infinity()
		}
		// tangent slope (3x² + A) / 2y
		num := new(big.Int).Mul(p1.X, p1.X)
		num.Mul(num, bigThree)
		num.Add(num, c.A)
		den := new(big.Int).Lsh(p1.Y, 1)
		return c.chord(p1, p2, num, den)
	}
	num := new(big.Int).Sub(p2.Y, p1.Y)
	den := new(big.Int).Sub(p2.X, p1.X)
	return c.chord(p1, p2, num, den)
}

// chord completes the group law once the slope numerator and denominator
// are known. den is invertible for any pair of curve points over prime P.
func (c *CurveParams) chord(p1, p2 Point, num, den *big.Int) Point {
	den.Mod(den, c.P)
	inv := new(big.Int).ModInverse(den, c.P)
	if inv == nil {
		return Infinity()
	}
	lam := num.Mul(num, inv)
	lam.Mod(lam, c.P)

	x3 := new(big.Int).Mul(lam, lam)
	x3.Sub(x3, p1.X)
	x3.Sub(x3, p2.X)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Sub(p1.X, x3)
	y3.Mul(y3, lam)
	y3.Sub(y3, p1.Y)
	y3.Mod(y3, c.P)

	return Point{X: x3, Y: y3}
}

// Double returns 2·pt.
func (c *CurveParams) Double(pt Point) Point {
	return c.Add(pt, pt)
}

// Neg returns -pt.
func (c *CurveParams) Neg(pt Point) Point {
	if pt.Inf {
		return pt
	}
	y := new(big.Int).Neg(pt.Y)
	y.Mod(y, c.P)
	return Point{X: new(big.Int).Set(pt.X), Y: y}
}

// ScalarMult computes k·pt by double-and-add. k is reduced mod Order
// first, so negative scalars work.
func (c *CurveParams) ScalarMult(pt Point, k *big.Int) Point {
	kk := new(big.Int).Set(k)
	if c.Order != nil && c.Order.Sign() > 0 {
		kk.Mod(kk, c.Order)
	}
	res := Infinity()
	acc := pt
	for i := 0; i < kk.BitLen(); i++ {
		if kk.Bit(i) == 1 {
			res = c.Add(res, acc)
		}
		acc = c.Double(acc)
	}
	return res
}

// IsSingular reports whether the discriminant vanishes mod P, i.e.
// 4A³ + 27B² ≡ 0.
func (c *CurveParams) IsSingular() bool {
	a3 := new(big.Int).Mul(c.A, c.A)
	a3.Mul(a3, c.A)
	a3.Mul(a3, big.NewInt(4))
	b2 := new(big.Int).Mul(c.B, c.B)
	b2.Mul(b2, big.NewInt(27))
	a3.Add(a3, b2)
	a3.Mod(a3, c.P)
	return a3.Sign() == 0
}

// Validate checks the invariants the rest of the pipeline relies on: a
// prime modulus above 3, a non-singular curve, generator and public point
// on the curve, and Order·Generator = O.
func (c *CurveParams) Validate() error {
	if c.P == nil || c.A == nil || c.B == nil || c.Order == nil {
		return fmt.Errorf("curve parameters incomplete")
	}
	if c.P.Cmp(bigThree) <= 0 {
		return fmt.Errorf("modulus %s must be > 3", c.P)
	}
	if !c.P.ProbablyPrime(32) {
		return fmt.Errorf("modulus %s is not prime", c.P)
	}
	if c.IsSingular() {
		return fmt.Errorf("singular curve: 4A³+27B² ≡ 0 mod %s", c.P)
	}
	if c.Order.Sign() <= 0 {
		return fmt.Errorf("order %s must be positive", c.Order)
	}
	if !c.IsOnCurve(c.Generator) {
		return fmt.Errorf("generator %s is not on the curve", c.Generator)
	}
	if c.Generator.Inf {
		return fmt.Errorf("generator must not be the identity")
	}
	if !c.IsOnCurve(c.PublicPoint) {
		return fmt.Errorf("public point %s is not on the curve", c.PublicPoint)
	}
	if !c.ScalarMult(c.Generator, c.Order).Inf {
		return fmt.Errorf("order %s is not the generator's order", c.Order)
	}
	return nil
}
