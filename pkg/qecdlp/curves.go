package qecdlp

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// QDay7Bit returns the 7-bit challenge curve y² = x³ + 7 over F_67 with
// generator (48, 60) of order 79 and public point (52, 7).
func QDay7Bit() *CurveParams {
	return &CurveParams{
		P:           big.NewInt(67),
		A:           big.NewInt(0),
		B:           big.NewInt(7),
		Order:       big.NewInt(79),
		Generator:   NewPoint(48, 60),
		PublicPoint: NewPoint(52, 7),
	}
}

// Secp256k1 returns the full-size y² = x³ + 7 curve with the standard
// generator, built from the secp256k1 library parameters. The public
// point is left at infinity; callers supply the recovery target, e.g. via
// ParsePublicPoint.
func Secp256k1() *CurveParams {
	params := secp256k1.S256().Params()
	return &CurveParams{
		P:           new(big.Int).Set(params.P),
		A:           big.NewInt(0),
		B:           new(big.Int).Set(params.B),
		Order:       new(big.Int).Set(params.N),
		Generator:   Point{X: new(big.Int).Set(params.Gx), Y: new(big.Int).Set(params.Gy)},
		PublicPoint: Infinity(),
	}
}

// ParsePublicPoint decodes a SEC-encoded secp256k1 public key (33-byte
// compressed or 65-byte uncompressed) into an affine point usable as
// CurveParams.PublicPoint.
func ParsePublicPoint(publicKeyBytes []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(publicKeyBytes)
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse public key: %w", err)
	}
	return Point{X: pub.X(), Y: pub.Y()}, nil
}

// VerifyKeyCompressed checks a recovered secp256k1 private key against a
// 33-byte compressed public key, taking the library's fixed-base scalar
// multiplication instead of the generic big.Int curve law.
func VerifyKeyCompressed(privateKey *big.Int, publicKeyBytes []byte) (bool, error) {
	if len(publicKeyBytes) != 33 {
		return false, fmt.Errorf("public key must be 33 bytes (compressed format)")
	}
	n := secp256k1.S256().Params().N
	if privateKey.Sign() <= 0 || privateKey.Cmp(n) >= 0 {
		return false, fmt.Errorf("private key out of valid range")
	}

	var buf [32]byte
	privateKey.FillBytes(buf[:])
	priv := secp256k1.PrivKeyFromBytes(buf[:])
	recovered := priv.PubKey().SerializeCompressed()
	return bytes.Equal(recovered, publicKeyBytes), nil
}
