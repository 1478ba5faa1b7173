package wiener

import (
	"context"

	"github.com/pkg/errors"
)

// Client provides a high-level API for attacking keys read from files.
type Client struct {
	strategy Strategy
	parser   KeyParser
	workers  int
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		strategy: NewContinuedFractionStrategy(),
		parser:   &JSONParser{},
		workers:  1,
	}
}

// WithStrategy sets a custom recovery strategy.
func (c *Client) WithStrategy(strategy Strategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom key parser.
func (c *Client) WithParser(parser KeyParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets how many keys RecoverKeys attacks concurrently
// (0 = one per CPU core).
func (c *Client) WithWorkers(workers int) *Client {
	c.workers = workers
	return c
}

// KeyOutcome pairs a parsed key with the result of attacking it.
type KeyOutcome struct {
	Key    *PublicKey
	Result *RecoveryResult
	Err    error
}

// RecoverKey attacks the first public key found in source.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to key file (format depends on the parser).
//
// Returns:
//   - RecoveryResult if successful, error otherwise.
func (c *Client) RecoverKey(ctx context.Context, source string) (*RecoveryResult, error) {
	keys, err := c.parser.ParseKeys(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse keys")
	}
	if len(keys) == 0 {
		return nil, errors.Errorf("no keys in %s", source)
	}
	return c.RecoverKeyFromPublicKey(ctx, keys[0])
}

// RecoverKeys attacks every key in source. Per-key failures, including
// ErrAttackFailed, are reported in the outcomes; the returned error only
// covers parsing and cancellation.
func (c *Client) RecoverKeys(ctx context.Context, source string) ([]KeyOutcome, error) {
	keys, err := c.parser.ParseKeys(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse keys")
	}
	if c.workers != 1 && len(keys) > 1 {
		return c.recoverParallel(ctx, keys)
	}

	outcomes := make([]KeyOutcome, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		result, err := c.RecoverKeyFromPublicKey(ctx, key)
		outcomes = append(outcomes, KeyOutcome{Key: key, Result: result, Err: err})
	}
	return outcomes, nil
}

// RecoverKeyFromPublicKey attacks an in-memory key. Use this when you have
// already parsed the key yourself.
func (c *Client) RecoverKeyFromPublicKey(ctx context.Context, key *PublicKey) (*RecoveryResult, error) {
	result, err := c.strategy.Search(ctx, key)
	if err != nil {
		return nil, err
	}

	verified, err := VerifyRecoveredKey(key, result)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, errors.Errorf("%s returned a key that fails verification", c.strategy.Name())
	}
	return result, nil
}
