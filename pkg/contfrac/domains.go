package contfrac

import (
	"math"
	"math/big"
)

// Float64Domain expands float64 values. Expansions of irrational inputs only
// stop on floating-point degeneracy: a remainder of exactly zero, or one so
// small that its reciprocal overflows.
type Float64Domain struct{}

func (Float64Domain) Floor(x float64) *big.Int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	n, _ := big.NewFloat(math.Floor(x)).Int(nil)
	return n
}

func (Float64Domain) Reciprocal(x float64) float64 { return 1 / x }

func (Float64Domain) Embed(n *big.Int) float64 {
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

func (Float64Domain) Sub(x, y float64) float64 { return x - y }

func (Float64Domain) IsZero(x float64) bool {
	return x == 0 || math.IsInf(1/x, 0)
}

// RatDomain expands exact rationals. Every rational has a finite expansion
// whose last convergent is the input in lowest terms.
//
// Floor truncates toward zero, which is only a floor for non-negative values;
// expansions of negative rationals are not meaningful.
type RatDomain struct{}

func (RatDomain) Floor(x *big.Rat) *big.Int {
	return new(big.Int).Quo(x.Num(), x.Denom())
}

func (RatDomain) Reciprocal(x *big.Rat) *big.Rat { return new(big.Rat).Inv(x) }

func (RatDomain) Embed(n *big.Int) *big.Rat { return new(big.Rat).SetInt(n) }

func (RatDomain) Sub(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }

func (RatDomain) IsZero(x *big.Rat) bool { return x.Sign() == 0 }

// Float expands x as a float64.
func Float(x float64) *Expansion[float64] {
	return New[float64](Float64Domain{}, x)
}

// Rational expands a copy of x exactly.
func Rational(x *big.Rat) *Expansion[*big.Rat] {
	return New[*big.Rat](RatDomain{}, new(big.Rat).Set(x))
}

// RationalOf expands num/den exactly. It panics if den is zero.
func RationalOf(num, den *big.Int) *Expansion[*big.Rat] {
	return New[*big.Rat](RatDomain{}, new(big.Rat).SetFrac(num, den))
}
