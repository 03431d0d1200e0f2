package selection

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the resolution error for a request that reached the
// executor after a newer one had already run. The store is left untouched.
var ErrSuperseded = errors.New("selection request superseded")

// Executor serialises requests against a store in issue order. Requests may
// arrive from concurrent goroutines in any order; one whose token is not
// newer than the last executed token is skipped, so the store always ends on
// the state of the newest request it has seen. Each request, including the
// clear and select of a range, runs under one lock.
type Executor struct {
	store Store

	mu   sync.Mutex
	last uint64
}

func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Store returns the store requests are executed against.
func (e *Executor) Store() Store {
	return e.store
}

// Execute runs req unless a newer request already ran.
func (e *Executor) Execute(ctx context.Context, req Request) Resolution {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Token <= e.last {
		return Resolution{Token: req.Token, Err: ErrSuperseded}
	}
	e.last = req.Token
	return Execute(ctx, e.store, req)
}
