package contfrac

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairs(cs []Convergent) [][2]int64 {
	out := make([][2]int64, len(cs))
	for i, c := range cs {
		out[i] = [2]int64{c.Num.Int64(), c.Den.Int64()}
	}
	return out
}

func TestFloatPi(t *testing.T) {
	got := Float(math.Pi).Take(10)
	want := [][2]int64{
		{3, 1}, {22, 7}, {333, 106}, {355, 113}, {103993, 33102},
		{104348, 33215}, {208341, 66317}, {312689, 99532}, {833719, 265381}, {1146408, 364913},
	}
	assert.Equal(t, want, pairs(got))

	// Errors shrink in absolute value.
	prev := math.Inf(1)
	for _, c := range got[:8] {
		diff := math.Abs(math.Pi - c.Float64())
		assert.Less(t, diff, prev, "convergent %s", c)
		prev = diff
	}
}

func TestFloatTerminatesOnExactValues(t *testing.T) {
	assert.Equal(t, [][2]int64{{0, 1}, {1, 2}}, pairs(Float(0.5).All()))
	assert.Equal(t, [][2]int64{{0, 1}, {1, 1}, {3, 4}}, pairs(Float(0.75).All()))
	assert.Equal(t, [][2]int64{{7, 1}}, pairs(Float(7).All()))
}

func TestFloatRejectsNonFinite(t *testing.T) {
	assert.Empty(t, Float(math.NaN()).All())
	assert.Empty(t, Float(math.Inf(1)).All())
}

func TestRationalKnownExpansion(t *testing.T) {
	got := RationalOf(big.NewInt(4090249588), big.NewInt(2899386061)).All()
	want := [][2]int64{
		{1, 1}, {3, 2}, {7, 5}, {24, 17}, {79, 56}, {1604, 1137}, {1683, 1193},
		{3287, 2330}, {8257, 5853}, {28058, 19889}, {92431, 65520}, {2708557, 1919969},
		{2800988, 1985489}, {13912509, 9861925}, {16713497, 11847414}, {30626006, 21709339},
		{108591515, 76975431}, {247809036, 175660201}, {356400551, 252635632},
		{604209587, 428295833}, {960610138, 680931465}, {1564819725, 1109227298},
		{4090249588, 2899386061},
	}
	assert.Equal(t, want, pairs(got))
}

func TestRationalRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	limit := new(big.Int).Lsh(big.NewInt(1), 200)
	one := big.NewInt(1)

	for i := 0; i < 200; i++ {
		num := new(big.Int).Rand(rnd, limit)
		den := new(big.Int).Rand(rnd, limit)
		den.Add(den, one)
		x := new(big.Rat).SetFrac(num, den)

		cs := Rational(x).All()
		require.NotEmpty(t, cs)

		last := cs[len(cs)-1]
		assert.Zero(t, last.Num.Cmp(x.Num()), "numerator of %s", x)
		assert.Zero(t, last.Den.Cmp(x.Denom()), "denominator of %s", x)

		for _, c := range cs {
			g := new(big.Int).GCD(nil, nil, c.Num, c.Den)
			if c.Num.Sign() == 0 {
				assert.Zero(t, c.Den.Cmp(one), "zero convergent must be 0/1")
				continue
			}
			assert.Zero(t, g.Cmp(one), "convergent %s not in lowest terms", c)
		}
	}
}

func TestRationalEdgeCases(t *testing.T) {
	assert.Equal(t, [][2]int64{{0, 1}}, pairs(RationalOf(big.NewInt(0), big.NewInt(5)).All()))
	assert.Equal(t, [][2]int64{{6, 1}}, pairs(RationalOf(big.NewInt(12), big.NewInt(2)).All()))
	assert.Equal(t, [][2]int64{{0, 1}, {1, 3}}, pairs(RationalOf(big.NewInt(1), big.NewInt(3)).All()))
}

func TestExpansionStaysExhausted(t *testing.T) {
	exp := RationalOf(big.NewInt(3), big.NewInt(2))
	require.Len(t, exp.All(), 2)
	for i := 0; i < 3; i++ {
		_, ok := exp.Next()
		assert.False(t, ok)
	}
	assert.Empty(t, exp.Take(4))
}

func TestRationalDoesNotMutateInput(t *testing.T) {
	x := big.NewRat(415, 93)
	Rational(x).All()
	assert.Equal(t, "415/93", x.RatString())
}

func TestConvergentsAreCopies(t *testing.T) {
	exp := RationalOf(big.NewInt(355), big.NewInt(113))
	first, ok := exp.Next()
	require.True(t, ok)
	first.Num.SetInt64(1000)

	second, ok := exp.Next()
	require.True(t, ok)
	assert.Equal(t, "22/7", second.String())
	assert.Equal(t, "22/7", second.Rat().RatString())
}
