package qecdlp

import (
	"fmt"
	"math/big"
)

// EncodePeak returns the ideal measurement bitstring for a known private
// key and register multiple v: the outcome the two-register phase
// estimation peaks on when u = −key·v mod order. Both registers use the
// package's round-half-up fixed-point rule, so a peak encoded here always
// decodes back to the same key. Used by tests, fixtures and the
// simulator; the inverse of the decoder's candidate derivation.
func EncodePeak(params *CurveParams, layout RegisterLayout, key, v *big.Int) (string, error) {
	if params.Order == nil || params.Order.Sign() <= 0 {
		return "", fmt.Errorf("curve order must be positive")
	}
	order := params.Order
	vv := new(big.Int).Mod(v, order)
	if vv.Sign() == 0 {
		return "", fmt.Errorf("register multiple must be nonzero mod order")
	}
	u := new(big.Int).Mul(key, vv)
	u.Neg(u)
	u.Mod(u, order)

	j := scaleToRegister(u, order, layout.JBits)
	k := scaleToRegister(vv, order, layout.KBits)
	return formatBits(j, layout.JBits) + formatBits(k, layout.KBits), nil
}

// scaleToRegister rounds x/order onto a bits-wide fixed-point register.
func scaleToRegister(x, order *big.Int, bits int) *big.Int {
	scale := new(big.Int).Lsh(bigOne, uint(bits))
	v := roundDiv(new(big.Int).Mul(x, scale), order)
	return v.Mod(v, scale)
}

func formatBits(x *big.Int, width int) string {
	return fmt.Sprintf("%0*b", width, x)
}

// IdealHistogram builds the zero-noise histogram that places every shot on
// the single v = 1 peak for the given key.
func IdealHistogram(params *CurveParams, layout RegisterLayout, key *big.Int, shots uint64) (Histogram, error) {
	bits, err := EncodePeak(params, layout, key, bigOne)
	if err != nil {
		return nil, err
	}
	return Histogram{bits: shots}, nil
}
