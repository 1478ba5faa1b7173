package numtheory

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISqrtFloor_Bounds(t *testing.T) {
	check := func(n *big.Int) {
		k, ok := ISqrtFloor(n)
		require.True(t, ok, "n=%s", n)

		lo := new(big.Int).Mul(k, k)
		k1 := new(big.Int).Add(k, one)
		hi := new(big.Int).Mul(k1, k1)
		assert.LessOrEqual(t, lo.Cmp(n), 0, "k^2 <= n for n=%s", n)
		assert.Equal(t, 1, hi.Cmp(n), "(k+1)^2 > n for n=%s", n)
	}

	for i := int64(0); i <= 2000; i++ {
		check(big.NewInt(i))
	}

	rnd := rand.New(rand.NewSource(11))
	limit := new(big.Int).Lsh(one, 2048)
	for i := 0; i < 50; i++ {
		n := new(big.Int).Rand(rnd, limit)
		check(n)

		k, _ := ISqrtFloor(n)
		assert.Zero(t, k.Cmp(new(big.Int).Sqrt(n)), "agrees with big.Int.Sqrt")
	}
}

func TestISqrtFloor_Negative(t *testing.T) {
	_, ok := ISqrtFloor(big.NewInt(-1))
	assert.False(t, ok)
	_, ok = ISqrtExact(big.NewInt(-16))
	assert.False(t, ok)
}

func TestISqrtExact(t *testing.T) {
	for k := int64(0); k <= 300; k++ {
		sq := big.NewInt(k * k)
		root, ok := ISqrtExact(sq)
		require.True(t, ok, "%d is a square", k*k)
		assert.Equal(t, k, root.Int64())

		for n := k*k + 1; n < (k+1)*(k+1); n++ {
			_, ok := ISqrtExact(big.NewInt(n))
			assert.False(t, ok, "%d is not a square", n)
		}
	}

	big1 := new(big.Int).Lsh(one, 1000)
	big1.Add(big1, big.NewInt(12345))
	sq := new(big.Int).Mul(big1, big1)
	root, ok := ISqrtExact(sq)
	require.True(t, ok)
	assert.Zero(t, root.Cmp(big1))

	_, ok = ISqrtExact(sq.Add(sq, one))
	assert.False(t, ok)
}

func TestEGCD(t *testing.T) {
	cases := [][2]int64{
		{0, 7}, {7, 0}, {48, 18}, {18, 48}, {17, 5}, {240, 46},
		{1, 1}, {12, 12}, {123456789, 987654321}, {5, 657360},
	}
	for _, c := range cases {
		a, b := big.NewInt(c[0]), big.NewInt(c[1])
		g, x, y := EGCD(a, b)

		want := new(big.Int).GCD(nil, nil, a, b)
		assert.Zero(t, g.Cmp(want), "gcd(%d, %d)", c[0], c[1])

		lhs := new(big.Int).Mul(a, x)
		lhs.Add(lhs, new(big.Int).Mul(b, y))
		assert.Zero(t, lhs.Cmp(g), "bezout identity for (%d, %d)", c[0], c[1])
	}

	g, x, y := EGCD(big.NewInt(0), big.NewInt(9))
	assert.Equal(t, []int64{9, 0, 1}, []int64{g.Int64(), x.Int64(), y.Int64()})
}

func TestModInverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(23))
	for i := 0; i < 500; i++ {
		m := big.NewInt(rnd.Int63n(1_000_000) + 2)
		a := big.NewInt(rnd.Int63n(1_000_000) + 2)
		if new(big.Int).GCD(nil, nil, a, m).Cmp(one) != 0 {
			_, ok := ModInverse(a, m)
			assert.False(t, ok, "no inverse of %s mod %s", a, m)
			continue
		}

		inv, ok := ModInverse(a, m)
		require.True(t, ok, "inverse of %s mod %s", a, m)
		assert.GreaterOrEqual(t, inv.Sign(), 0, "normalized")
		assert.Less(t, inv.Cmp(m), 0)

		prod := new(big.Int).Mul(a, inv)
		assert.Zero(t, prod.Mod(prod, m).Cmp(one), "a*inv mod m for a=%s m=%s", a, m)
	}
}

func TestModInverse_Cases(t *testing.T) {
	inv, ok := ModInverse(big.NewInt(7), big.NewInt(657360))
	require.True(t, ok)
	assert.Equal(t, int64(469543), inv.Int64())

	inv, ok = ModInverse(big.NewInt(-1), big.NewInt(5))
	require.True(t, ok)
	assert.Equal(t, int64(4), inv.Int64())

	_, ok = ModInverse(big.NewInt(5), big.NewInt(657360))
	assert.False(t, ok, "5 divides phi")

	_, ok = ModInverse(big.NewInt(3), big.NewInt(0))
	assert.False(t, ok)
}
