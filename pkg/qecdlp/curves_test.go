package qecdlp

import (
	"encoding/hex"
	"math/big"
	"testing"
)

// Compressed SEC encoding of the secp256k1 generator.
const secpGeneratorHex = "0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"

func TestQDay7Bit(t *testing.T) {
	curve := QDay7Bit()
	if err := curve.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if curve.NumBits() != 7 {
		t.Errorf("NumBits = %d, want 7", curve.NumBits())
	}
	if got := curve.ScalarMult(curve.Generator, sevenBitKey); !got.Equal(curve.PublicPoint) {
		t.Errorf("56·G = %s, want %s", got, curve.PublicPoint)
	}
}

func TestSecp256k1(t *testing.T) {
	curve := Secp256k1()
	if curve.NumBits() != 256 {
		t.Errorf("NumBits = %d, want 256", curve.NumBits())
	}
	if !curve.IsOnCurve(curve.Generator) {
		t.Error("generator should be on the curve")
	}
	if !curve.PublicPoint.Inf {
		t.Error("public point should default to infinity")
	}
	if got := curve.ScalarMult(curve.Generator, curve.Order); !got.Inf {
		t.Error("order should annihilate the generator")
	}
}

func TestParsePublicPoint(t *testing.T) {
	raw, err := hex.DecodeString(secpGeneratorHex)
	if err != nil {
		t.Fatalf("Failed to decode hex: %v", err)
	}
	point, err := ParsePublicPoint(raw)
	if err != nil {
		t.Fatalf("ParsePublicPoint: %v", err)
	}
	if !Secp256k1().Generator.Equal(point) {
		t.Errorf("parsed point %s is not the generator", point)
	}
}

func TestParsePublicPoint_Invalid(t *testing.T) {
	if _, err := ParsePublicPoint([]byte{0x02, 0x01}); err == nil {
		t.Fatal("expected error for truncated key")
	}
	if _, err := ParsePublicPoint(nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestVerifyKeyCompressed(t *testing.T) {
	raw, err := hex.DecodeString(secpGeneratorHex)
	if err != nil {
		t.Fatalf("Failed to decode hex: %v", err)
	}

	// The generator is 1·G.
	ok, err := VerifyKeyCompressed(big.NewInt(1), raw)
	if err != nil {
		t.Fatalf("VerifyKeyCompressed: %v", err)
	}
	if !ok {
		t.Error("key 1 should verify against the generator")
	}

	ok, err = VerifyKeyCompressed(big.NewInt(2), raw)
	if err != nil {
		t.Fatalf("VerifyKeyCompressed: %v", err)
	}
	if ok {
		t.Error("key 2 should not verify against the generator")
	}
}

func TestVerifyKeyCompressed_BadInput(t *testing.T) {
	raw, _ := hex.DecodeString(secpGeneratorHex)

	if _, err := VerifyKeyCompressed(big.NewInt(1), raw[:10]); err == nil {
		t.Error("expected error for short public key")
	}
	if _, err := VerifyKeyCompressed(big.NewInt(0), raw); err == nil {
		t.Error("expected error for zero key")
	}
	n := Secp256k1().Order
	if _, err := VerifyKeyCompressed(n, raw); err == nil {
		t.Error("expected error for key ≥ order")
	}
}
