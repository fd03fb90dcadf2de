package qecdlp

import (
	"math/big"
	"testing"
)

func TestCurveAdd(t *testing.T) {
	curve := QDay7Bit()
	g := curve.Generator

	// 2G and 3G on y² = x³ + 7 over F_67
	twoG := curve.Add(g, g)
	if !twoG.Equal(NewPoint(54, 50)) {
		t.Errorf("2G = %s, want (54, 50)", twoG)
	}

	threeG := curve.Add(twoG, g)
	if !threeG.Equal(NewPoint(5, 47)) {
		t.Errorf("3G = %s, want (5, 47)", threeG)
	}

	if !curve.IsOnCurve(twoG) || !curve.IsOnCurve(threeG) {
		t.Error("point addition left the curve")
	}
}

func TestCurveAdd_Identity(t *testing.T) {
	curve := QDay7Bit()
	g := curve.Generator

	if got := curve.Add(g, Infinity()); !got.Equal(g) {
		t.Errorf("G + O = %s, want G", got)
	}
	if got := curve.Add(Infinity(), g); !got.Equal(g) {
		t.Errorf("O + G = %s, want G", got)
	}
	if got := curve.Add(Infinity(), Infinity()); !got.Inf {
		t.Errorf("O + O = %s, want O", got)
	}
}

func TestCurveAdd_Inverse(t *testing.T) {
	curve := QDay7Bit()
	g := curve.Generator

	negG := curve.Neg(g)
	if !negG.Equal(NewPoint(48, 7)) {
		t.Errorf("-G = %s, want (48, 7)", negG)
	}
	if got := curve.Add(g, negG); !got.Inf {
		t.Errorf("G + (-G) = %s, want O", got)
	}
}

func TestScalarMult(t *testing.T) {
	curve := QDay7Bit()
	g := curve.Generator

	// The known discrete log of the challenge public point.
	if got := curve.ScalarMult(g, sevenBitKey); !got.Equal(curve.PublicPoint) {
		t.Errorf("56·G = %s, want %s", got, curve.PublicPoint)
	}

	// Order annihilates the generator.
	if got := curve.ScalarMult(g, curve.Order); !got.Inf {
		t.Errorf("79·G = %s, want O", got)
	}

	// Scalars reduce mod the order, including negative ones.
	if got := curve.ScalarMult(g, big.NewInt(-1)); !got.Equal(curve.Neg(g)) {
		t.Errorf("(-1)·G = %s, want -G", got)
	}
	big135 := new(big.Int).Add(curve.Order, sevenBitKey)
	if got := curve.ScalarMult(g, big135); !got.Equal(curve.PublicPoint) {
		t.Errorf("(79+56)·G = %s, want 56·G", got)
	}
}

func TestScalarMult_Zero(t *testing.T) {
	curve := QDay7Bit()
	if got := curve.ScalarMult(curve.Generator, big.NewInt(0)); !got.Inf {
		t.Errorf("0·G = %s, want O", got)
	}
}

func TestIsOnCurve(t *testing.T) {
	curve := QDay7Bit()
	if !curve.IsOnCurve(curve.Generator) {
		t.Error("generator should be on the curve")
	}
	if !curve.IsOnCurve(curve.PublicPoint) {
		t.Error("public point should be on the curve")
	}
	if !curve.IsOnCurve(Infinity()) {
		t.Error("infinity should be on every curve")
	}
	if curve.IsOnCurve(NewPoint(1, 1)) {
		t.Error("(1, 1) should not be on the curve")
	}
}

func TestCurveValidate(t *testing.T) {
	if err := QDay7Bit().Validate(); err != nil {
		t.Errorf("challenge curve should validate: %v", err)
	}
}

func TestCurveValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CurveParams)
	}{
		{"composite modulus", func(c *CurveParams) { c.P = big.NewInt(68) }},
		{"tiny modulus", func(c *CurveParams) { c.P = big.NewInt(3) }},
		{"singular curve", func(c *CurveParams) { c.A = big.NewInt(0); c.B = big.NewInt(0) }},
		{"zero order", func(c *CurveParams) { c.Order = big.NewInt(0) }},
		{"wrong order", func(c *CurveParams) { c.Order = big.NewInt(80) }},
		{"generator off curve", func(c *CurveParams) { c.Generator = NewPoint(1, 1) }},
		{"generator at infinity", func(c *CurveParams) { c.Generator = Infinity() }},
		{"public point off curve", func(c *CurveParams) { c.PublicPoint = NewPoint(1, 1) }},
		{"missing order", func(c *CurveParams) { c.Order = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curve := QDay7Bit()
			tc.mutate(curve)
			if err := curve.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}
