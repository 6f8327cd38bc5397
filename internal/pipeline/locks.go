package pipeline

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/introlaser/shop-bot/internal/common"
)

// orderLocks enforces at most one in-flight receipt evaluation per
// order. A second submission for the same order is rejected immediately
// rather than queued, so the user gets a truthful answer right away.
type orderLocks struct {
	mu    sync.Mutex
	locks map[uint]*semaphore.Weighted
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[uint]*semaphore.Weighted)}
}

// acquire returns a release func, or ErrEvaluationInProgress when an
// evaluation for the order is already running. One entry per order;
// entries are tiny and never evicted.
func (l *orderLocks) acquire(orderID uint) (func(), error) {
	l.mu.Lock()
	sem, found := l.locks[orderID]
	if !found {
		sem = semaphore.NewWeighted(1)
		l.locks[orderID] = sem
	}
	l.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, common.ErrEvaluationInProgress
	}
	return func() { sem.Release(1) }, nil
}
