package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/shapes/pkg/catalog"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	catalog *catalog.Catalog
	errors  []EvalError
	err     error
}

// waitWithTimeout returns the result sent on ch unless the limit passes
// first or a newer evaluation bumped the generation. A timed-out goroutine
// keeps running; its late result is dropped with the channel.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	limit time.Duration,
) (*catalog.Catalog, []EvalError, error) {
	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.catalog, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", limit)
	}
}
