package wiener

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidKey is returned for public keys outside N > 0, 0 < e < N.
	ErrInvalidKey = errors.New("wiener: invalid public key")

	// ErrAttackFailed is returned when no convergent of e/N factors N.
	ErrAttackFailed = errors.New("wiener: attack failed")

	// ErrExponentMismatch is returned when a convergent factors N but its
	// denominator is not the inverse of e modulo phi(N).
	ErrExponentMismatch = errors.New("wiener: recovered exponent does not invert e")
)

// PublicKey is an RSA public key under attack.
type PublicKey struct {
	Name string   // Optional label, e.g. from the key file
	N    *big.Int // Modulus
	E    *big.Int // Public exponent
}

// Validate checks N > 0 and 0 < e < N.
func (k *PublicKey) Validate() error {
	if k == nil || k.N == nil || k.E == nil {
		return errors.Wrap(ErrInvalidKey, "missing modulus or exponent")
	}
	if k.N.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidKey, "modulus %s is not positive", k.N)
	}
	if k.E.Sign() <= 0 || k.E.Cmp(k.N) >= 0 {
		return errors.Wrapf(ErrInvalidKey, "exponent %s outside (0, N)", k.E)
	}
	return nil
}

// Factorization is a split N = P*Q with P >= Q > 1.
type Factorization struct {
	P *big.Int
	Q *big.Int
}

// Phi returns (P-1)*(Q-1).
func (f Factorization) Phi() *big.Int {
	p1 := new(big.Int).Sub(f.P, one)
	q1 := new(big.Int).Sub(f.Q, one)
	return p1.Mul(p1, q1)
}

// RecoveryResult contains the result of a successful attack.
type RecoveryResult struct {
	Factorization

	D               *big.Int // Recovered private exponent
	Phi             *big.Int // (P-1)*(Q-1)
	K               *big.Int // Convergent numerator, ed = 1 + K*Phi
	ConvergentIndex int      // Index of the winning convergent of e/N
	Strategy        string   // Name of the strategy that found it
}
