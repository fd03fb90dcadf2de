package qecdlp

import "math/big"

// roundDiv returns round(num/den) on exact integers, rounding halves up:
// round(n/d) = floor((2n + d) / 2d). This is the single rounding rule used
// for every fixed-point phase conversion in the package, in both the
// encode and decode directions.
func roundDiv(num, den *big.Int) *big.Int {
	r := new(big.Int).Lsh(num, 1)
	r.Add(r, den)
	return r.Div(r, new(big.Int).Lsh(den, 1))
}

// convergents returns the continued-fraction convergents p/q of num/den
// with q ≤ maxDen, in order of increasing denominator.
func convergents(num, den, maxDen *big.Int) [][2]*big.Int {
	var out [][2]*big.Int
	a := new(big.Int).Set(num)
	b := new(big.Int).Set(den)
	hPrev, h := big.NewInt(0), big.NewInt(1) // h_{-2}, h_{-1}
	kPrev, k := big.NewInt(1), big.NewInt(0) // k_{-2}, k_{-1}
	for b.Sign() != 0 {
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		hNext := new(big.Int).Mul(q, h)
		hNext.Add(hNext, hPrev)
		kNext := new(big.Int).Mul(q, k)
		kNext.Add(kNext, kPrev)
		if kNext.Cmp(maxDen) > 0 {
			break
		}
		out = append(out, [2]*big.Int{hNext, kNext})
		hPrev, h = h, hNext
		kPrev, k = k, kNext
		a, b = b, r
	}
	return out
}

// phaseCandidates maps one measured register value onto candidate
// frequency multiples u with reg/2^bits ≈ u/order. The first candidate is
// the direct fixed-point rounding round(reg·order/2^bits); convergents of
// reg/2^bits whose denominator divides the order contribute further
// candidates for noisier outcomes. The returned order is deterministic.
func phaseCandidates(reg *big.Int, bits int, order *big.Int) []*big.Int {
	scale := new(big.Int).Lsh(bigOne, uint(bits))

	direct := roundDiv(new(big.Int).Mul(reg, order), scale)
	direct.Mod(direct, order)

	out := []*big.Int{direct}
	seen := map[string]bool{direct.String(): true}

	for _, conv := range convergents(reg, scale, order) {
		p, q := conv[0], conv[1]
		if q.Sign() == 0 {
			continue
		}
		// p/q lifts to u/order only when q divides the order
		rem := new(big.Int)
		mult, _ := new(big.Int).QuoRem(order, q, rem)
		if rem.Sign() != 0 {
			continue
		}
		u := new(big.Int).Mul(p, mult)
		u.Mod(u, order)
		if !seen[u.String()] {
			seen[u.String()] = true
			out = append(out, u)
		}
	}
	return out
}
