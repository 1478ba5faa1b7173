package wiener

import "context"

// Strategy defines the interface for private exponent recovery strategies.
type Strategy interface {
	// Search attempts to recover the private key behind key. It returns
	// ErrAttackFailed when the key is not vulnerable to the strategy.
	// The context can be used for cancellation.
	Search(ctx context.Context, key *PublicKey) (*RecoveryResult, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

// SearchConfig bounds and instruments a convergent search.
type SearchConfig struct {
	// MaxConvergents limits how many convergents of e/N are examined (0 = all)
	MaxConvergents int

	// ProgressInterval emits a debug log line every that many convergents (0 = off)
	ProgressInterval int
}

// DefaultSearchConfig examines every convergent, logging progress every 100.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxConvergents:   0,
		ProgressInterval: 100,
	}
}
