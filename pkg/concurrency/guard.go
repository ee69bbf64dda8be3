package concurrency

import (
	"context"
	"errors"
	"sync"
)

var ErrBusy = errors.New("an operation is already in progress")

// ConcurrencyGuard admits one task at a time. The controllers use it around
// the one-shot backend calls so a second prepare or import cannot start
// while one is in flight.
type ConcurrencyGuard struct {
	mu     sync.Mutex
	isBusy bool
}

func NewConcurrencyGuard() *ConcurrencyGuard {
	return &ConcurrencyGuard{}
}

func (g *ConcurrencyGuard) Execute(task func() error) error {
	if err := g.acquire(); err != nil {
		return err
	}
	defer g.release()
	return task()
}

// ExecuteWithContext runs task under the guard, refusing immediately when
// the context is already cancelled.
func (g *ConcurrencyGuard) ExecuteWithContext(ctx context.Context, task func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.acquire(); err != nil {
		return err
	}
	defer g.release()
	return task(ctx)
}

func (g *ConcurrencyGuard) acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isBusy {
		return ErrBusy
	}
	g.isBusy = true
	return nil
}

func (g *ConcurrencyGuard) release() {
	g.mu.Lock()
	g.isBusy = false
	g.mu.Unlock()
}
