package service

import (
	"context"
	"sync"
)

// MemoryGuard is the in-process transition guard: a mutex-protected set of
// order ids currently being transitioned. It protects against duplicate
// taps within one process only; deployments with several instances should
// use the Redis-backed guard instead.
type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inFlight: make(map[int64]struct{})}
}

func (g *MemoryGuard) TryAcquire(_ context.Context, orderID int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[orderID]; busy {
		return false, nil
	}
	g.inFlight[orderID] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, orderID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, orderID)
	return nil
}
