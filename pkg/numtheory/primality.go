// Package numtheory holds the integer routines the Wiener attack relies on:
// probabilistic primality, prime search, integer square roots and modular
// inverses.
//
// Randomized functions take an explicit *rand.Rand so that callers can seed
// them. A nil generator is replaced by a fresh time-seeded one local to the
// call. A *rand.Rand must not be shared between goroutines.
package numtheory

import (
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
)

// ErrInvalidInput is returned when an argument lies outside a function's domain.
var ErrInvalidInput = errors.New("numtheory: invalid input")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// PrimalityConfig tunes IsProbablePrime and GeneratePrime.
type PrimalityConfig struct {
	// Rounds is the number of Miller-Rabin bases drawn per candidate.
	Rounds int

	// TrialDivisionLimit bounds the trial divisors tried first, [2, limit).
	TrialDivisionLimit int64
}

// DefaultPrimalityConfig returns 100 Miller-Rabin rounds after trial division
// by every integer below 10000.
func DefaultPrimalityConfig() PrimalityConfig {
	return PrimalityConfig{
		Rounds:             100,
		TrialDivisionLimit: 10000,
	}
}

// Validate rejects configurations that would accept composites unchecked.
func (c PrimalityConfig) Validate() error {
	if c.Rounds <= 0 {
		return errors.Wrapf(ErrInvalidInput, "Miller-Rabin needs at least one round, got %d", c.Rounds)
	}
	return nil
}

// IsProbablePrime reports whether n is prime using the default configuration.
func IsProbablePrime(rnd *rand.Rand, n *big.Int) (bool, error) {
	return DefaultPrimalityConfig().IsProbablePrime(rnd, n)
}

// IsProbablePrime reports whether n is prime. A false result is certain; a
// true result is wrong with probability at most 4^-Rounds.
//
// It returns ErrInvalidInput for n <= 1 and for Rounds <= 0.
func (c PrimalityConfig) IsProbablePrime(rnd *rand.Rand, n *big.Int) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	if n.Cmp(one) <= 0 {
		return false, errors.Wrapf(ErrInvalidInput, "primality of %s", n)
	}

	if prime, ok := c.trialDivision(n); ok {
		return prime, nil
	}
	if n.Bit(0) == 0 {
		return n.Cmp(two) == 0, nil
	}

	rnd = ensureRand(rnd)
	nMinus1 := new(big.Int).Sub(n, one)
	nMinus2 := new(big.Int).Sub(n, two)
	for i := 0; i < c.Rounds; i++ {
		// a in [2, n-1]
		a := new(big.Int).Rand(rnd, nMinus2)
		a.Add(a, two)
		if !millerRabinRound(n, nMinus1, a) {
			return false, nil
		}
	}
	return true, nil
}

// trialDivision divides n by every integer in [2, limit). ok is false when
// no divisor settled the question.
func (c PrimalityConfig) trialDivision(n *big.Int) (prime, ok bool) {
	if c.TrialDivisionLimit <= 2 {
		return false, false
	}
	if n.IsUint64() {
		v := n.Uint64()
		for i := uint64(2); i < uint64(c.TrialDivisionLimit); i++ {
			if v == i {
				return true, true
			}
			if v%i == 0 {
				return false, true
			}
		}
		return false, false
	}

	d := new(big.Int)
	r := new(big.Int)
	for i := int64(2); i < c.TrialDivisionLimit; i++ {
		d.SetInt64(i)
		if r.Rem(n, d).Sign() == 0 {
			return false, true
		}
	}
	return false, false
}

// millerRabinRound returns false when a proves n composite.
func millerRabinRound(n, nMinus1, a *big.Int) bool {
	// Fermat: a^(n-1) = 1 for prime n.
	if mathutil.ModPowBigInt(a, nMinus1, n).Cmp(one) != 0 {
		return false
	}

	m := new(big.Int).Set(nMinus1)
	r := 0
	for m.Bit(0) == 0 {
		m.Rsh(m, 1)
		r++
	}

	z := mathutil.ModPowBigInt(a, m, n)
	if z.Cmp(one) == 0 || z.Cmp(nMinus1) == 0 {
		return true
	}

	for i := 0; i < r; i++ {
		z.Mul(z, z)
		z.Mod(z, n)

		if z.Cmp(nMinus1) == 0 {
			return true
		}
		if z.Cmp(one) == 0 {
			// Nontrivial square root of 1.
			return false
		}
	}

	// After r squarings z = a^(n-1), which the Fermat check pinned to 1.
	panic(fmt.Sprintf("numtheory: Miller-Rabin invariant violated for n=%s a=%s", n, a))
}

// GeneratePrime returns a prime of at least bits+1 bits using the default
// configuration.
func GeneratePrime(rnd *rand.Rand, bits uint) (*big.Int, error) {
	return DefaultPrimalityConfig().GeneratePrime(rnd, bits)
}

// GeneratePrime draws a uniform start in [2^bits, 2^(bits+1)) and returns the
// first probable prime at or above it, stepping by one.
func (c PrimalityConfig) GeneratePrime(rnd *rand.Rand, bits uint) (*big.Int, error) {
	if bits == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "prime generation needs at least 1 bit")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rnd = ensureRand(rnd)

	lower := new(big.Int).Lsh(one, bits)
	candidate := new(big.Int).Rand(rnd, lower)
	candidate.Add(candidate, lower)

	for {
		prime, err := c.IsProbablePrime(rnd, candidate)
		if err != nil {
			return nil, err
		}
		if prime {
			return candidate, nil
		}
		candidate.Add(candidate, one)
	}
}

func ensureRand(rnd *rand.Rand) *rand.Rand {
	if rnd != nil {
		return rnd
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
