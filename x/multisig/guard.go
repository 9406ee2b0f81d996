package multisig

import (
	"context"
	"sync"

	"github.com/iov-one/vault/errors"
)

// guard serializes mutations of a single engine and marks the contexts that
// run inside the critical section.
//
// Reentry is recognized by the mark only. A call made from inside the
// critical section with a context that does not carry the mark waits for the
// lock like any concurrent caller. If the code holding the lock waits for
// that call to return, neither ever does.
type guard struct {
	mu sync.Mutex
}

type guardKey struct{ g *guard }

// check fails if ctx was derived from a context handed out by enter.
func (g *guard) check(ctx context.Context) error {
	if ctx.Value(guardKey{g}) != nil {
		return errors.Wrap(ErrReentrancy, "called from within a settlement")
	}
	return nil
}

// enter takes the lock and returns a marked context. The caller must call
// leave when done.
func (g *guard) enter(ctx context.Context) (context.Context, error) {
	if err := g.check(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	return context.WithValue(ctx, guardKey{g}, true), nil
}

func (g *guard) leave() {
	g.mu.Unlock()
}
