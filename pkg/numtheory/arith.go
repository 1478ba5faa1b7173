package numtheory

import "math/big"

// ISqrtFloor returns floor(sqrt(n)) by binary search. ok is false for
// negative n.
func ISqrtFloor(n *big.Int) (root *big.Int, ok bool) {
	switch n.Sign() {
	case -1:
		return nil, false
	case 0:
		return new(big.Int), true
	}
	if n.Cmp(one) == 0 {
		return big.NewInt(1), true
	}

	// lower^2 <= n < upper^2
	lower := new(big.Int)
	upper := new(big.Int).Set(n)
	mid := new(big.Int)
	sq := new(big.Int)
	gap := new(big.Int)
	for gap.Sub(upper, lower).Cmp(one) > 0 {
		mid.Add(lower, upper)
		mid.Rsh(mid, 1)
		if sq.Mul(mid, mid).Cmp(n) <= 0 {
			lower.Set(mid)
		} else {
			upper.Set(mid)
		}
	}
	return lower, true
}

// ISqrtExact returns sqrt(n) when n is a perfect square.
func ISqrtExact(n *big.Int) (*big.Int, bool) {
	k, ok := ISqrtFloor(n)
	if !ok {
		return nil, false
	}
	if new(big.Int).Mul(k, k).Cmp(n) != 0 {
		return nil, false
	}
	return k, true
}

// EGCD returns g = gcd(a, b) together with Bezout coefficients satisfying
// a*x + b*y == g.
func EGCD(a, b *big.Int) (g, x, y *big.Int) {
	if a.Sign() == 0 {
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}
	q, r := new(big.Int).DivMod(b, a, new(big.Int))
	g, y0, x0 := EGCD(r, a)

	// g = r*y0 + a*x0 and r = b - q*a
	x = new(big.Int).Mul(q, y0)
	x.Sub(x0, x)
	return g, x, y0
}

// ModInverse returns the inverse of a modulo m in [0, m). ok is false when
// gcd(a, m) != 1 or m is not positive.
func ModInverse(a, m *big.Int) (inv *big.Int, ok bool) {
	if m.Sign() <= 0 {
		return nil, false
	}
	g, x, _ := EGCD(new(big.Int).Mod(a, m), m)
	if g.Cmp(one) != 0 {
		return nil, false
	}
	return x.Mod(x, m), true
}
