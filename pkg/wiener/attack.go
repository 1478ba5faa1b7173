package wiener

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/rsa-wiener/pkg/contfrac"
)

// ContinuedFractionStrategy is Wiener's attack: it walks the convergents k/d
// of e/N and stops at the first one whose d factors N.
type ContinuedFractionStrategy struct {
	Config SearchConfig
	logger log.Logger
}

// NewContinuedFractionStrategy creates the strategy with default settings.
func NewContinuedFractionStrategy() *ContinuedFractionStrategy {
	s := &ContinuedFractionStrategy{Config: DefaultSearchConfig()}
	s.logger = log.New("strategy", s.Name())
	return s
}

// WithSearchConfig sets the search configuration for the strategy.
func (s *ContinuedFractionStrategy) WithSearchConfig(config SearchConfig) *ContinuedFractionStrategy {
	s.Config = config
	return s
}

// WithLogger replaces the strategy's logger.
func (s *ContinuedFractionStrategy) WithLogger(logger log.Logger) *ContinuedFractionStrategy {
	s.logger = logger
	return s
}

// Name returns the name of this strategy.
func (s *ContinuedFractionStrategy) Name() string {
	return "ContinuedFraction"
}

// Search implements the Strategy interface.
func (s *ContinuedFractionStrategy) Search(ctx context.Context, key *PublicKey) (*RecoveryResult, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	logger := s.logger
	if logger == nil {
		logger = log.New("strategy", s.Name())
	}
	logger = logger.New("key", key.Name, "bits", key.N.BitLen())
	logger.Debug("Starting convergent search")

	var (
		exp      = contfrac.RationalOf(key.E, key.N)
		ed       = new(big.Int)
		phiGuess = new(big.Int)
		index    int
	)
	for ; s.Config.MaxConvergents <= 0 || index < s.Config.MaxConvergents; index++ {
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "search interrupted after %d convergents", index)
		default:
		}

		c, ok := exp.Next()
		if !ok {
			break
		}
		if s.Config.ProgressInterval > 0 && index > 0 && index%s.Config.ProgressInterval == 0 {
			logger.Debug("Examining convergents", "index", index, "dbits", c.Den.BitLen())
		}

		k, d := c.Num, c.Den
		if k.Sign() == 0 {
			continue
		}

		// ed - 1 = k*phi; a remainder means a wrong guess, which the
		// factorization check rejects.
		ed.Mul(key.E, d)
		phiGuess.Sub(ed, one)
		phiGuess.Quo(phiGuess, k)

		f, ok := RecoverFactors(key.N, phiGuess)
		if !ok {
			continue
		}

		phi := f.Phi()
		if new(big.Int).Mod(ed, phi).Cmp(one) != 0 {
			return nil, errors.Wrapf(ErrExponentMismatch, "convergent %d (%s) factors N", index, c)
		}

		logger.Info("Recovered private exponent", "index", index, "dbits", d.BitLen())
		return &RecoveryResult{
			Factorization:   *f,
			D:               d,
			Phi:             phi,
			K:               k,
			ConvergentIndex: index,
			Strategy:        s.Name(),
		}, nil
	}

	logger.Debug("No convergent factors the modulus", "examined", index)
	return nil, errors.Wrapf(ErrAttackFailed, "%d convergents examined", index)
}

// Attack runs Wiener's attack on (n, e) with the default strategy.
func Attack(n, e *big.Int) (*RecoveryResult, error) {
	return NewContinuedFractionStrategy().Search(context.Background(), &PublicKey{N: n, E: e})
}
