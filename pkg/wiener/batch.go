package wiener

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
)

// batchItem is a single key handed to a batch worker.
type batchItem struct {
	index int
	key   *PublicKey
}

// recoverParallel attacks keys with a pool of workers. Outcomes keep the
// order of keys. If ctx is cancelled, only the outcomes of keys that were
// attacked are returned, together with the context error.
func (c *Client) recoverParallel(ctx context.Context, keys []*PublicKey) ([]KeyOutcome, error) {
	numWorkers := c.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(keys) {
		numWorkers = len(keys)
	}
	log.Debug("Attacking keys in parallel", "keys", len(keys), "workers", numWorkers)

	outcomes := make([]KeyOutcome, len(keys))
	workChan := make(chan batchItem, numWorkers*2)

	var (
		attacked int64
		wg       sync.WaitGroup
	)
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				result, err := c.RecoverKeyFromPublicKey(ctx, item.key)
				outcomes[item.index] = KeyOutcome{Key: item.key, Result: result, Err: err}
				atomic.AddInt64(&attacked, 1)
			}
		}()
	}

produce:
	for i, key := range keys {
		select {
		case <-ctx.Done():
			break produce
		case workChan <- batchItem{index: i, key: key}:
		}
	}
	close(workChan)
	wg.Wait()

	log.Debug("Batch finished", "attacked", atomic.LoadInt64(&attacked), "keys", len(keys))

	if err := ctx.Err(); err != nil {
		done := outcomes[:0]
		for _, o := range outcomes {
			if o.Key != nil {
				done = append(done, o)
			}
		}
		return done, err
	}
	return outcomes, nil
}
