package runner

import (
	"context"
	"sync"
)

// Group tracks background workers; each worker reports its terminal error on
// its own channel.
type Group struct {
	wg sync.WaitGroup
}

// Go starts fn in a goroutine. The returned channel receives fn's result once
// and is then closed.
func (g *Group) Go(ctx context.Context, fn func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		done <- fn(ctx)
		close(done)
	}()
	return done
}

// Wait blocks until every started worker has returned.
func (g *Group) Wait() { g.wg.Wait() }
