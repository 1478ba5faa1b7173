package wiener

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/remyoudompheng/bigfft"

	"github.com/mahdiidarabi/rsa-wiener/pkg/numtheory"
)

var (
	one  = big.NewInt(1)
	four = big.NewInt(4)

	// verifyMessage is encrypted and decrypted by VerifyRecoveredKey.
	verifyMessage = big.NewInt(0x5eed)
)

// RecoverFactors tests a guess for phi(N) and returns the factorization it
// implies, if any.
//
// With A = N - phi + 1 = p + q and B^2 = A^2 - 4N = (p - q)^2, the factors
// are (A + B)/2 and (A - B)/2. The guess is accepted only when B^2 is a
// perfect square and the two halves multiply back to N.
func RecoverFactors(n, phiGuess *big.Int) (*Factorization, bool) {
	a := new(big.Int).Sub(n, phiGuess)
	a.Add(a, one)

	b2 := bigfft.Mul(a, a)
	b2.Sub(b2, new(big.Int).Mul(four, n))

	b, ok := numtheory.ISqrtExact(b2)
	if !ok {
		return nil, false
	}

	p := new(big.Int).Add(a, b)
	p.Quo(p, big.NewInt(2))
	q := new(big.Int).Sub(a, b)
	q.Quo(q, big.NewInt(2))

	if q.Cmp(one) <= 0 {
		return nil, false
	}
	if bigfft.Mul(p, q).Cmp(n) != 0 {
		return nil, false
	}
	return &Factorization{P: p, Q: q}, true
}

// VerifyRecoveredKey checks a result against the public key: P*Q == N,
// E*D == 1 mod phi(N), and a fixed message survives encryption followed by
// decryption.
func VerifyRecoveredKey(key *PublicKey, result *RecoveryResult) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}
	if result == nil || result.P == nil || result.Q == nil || result.D == nil {
		return false, errors.New("wiener: incomplete recovery result")
	}

	if new(big.Int).Mul(result.P, result.Q).Cmp(key.N) != 0 {
		return false, nil
	}

	phi := result.Factorization.Phi()
	if phi.Sign() <= 0 {
		return false, nil
	}
	ed := new(big.Int).Mul(key.E, result.D)
	if ed.Mod(ed, phi).Cmp(one) != 0 {
		return false, nil
	}

	m := new(big.Int).Mod(verifyMessage, key.N)
	c := new(big.Int).Exp(m, key.E, key.N)
	if c.Exp(c, result.D, key.N).Cmp(m) != 0 {
		return false, nil
	}
	return true, nil
}
