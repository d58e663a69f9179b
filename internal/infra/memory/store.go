// Package memory holds the process-local repositories used by the default
// "memory" store backend and by use case tests.
package memory

import (
	"slices"
	"sync"

	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/shared"
)

type versioned interface {
	Version() int
	IncrementVersion()
}

// table keeps detached copies so callers never share state with the store.
type table[K comparable, A versioned] struct {
	mu    sync.RWMutex
	rows  map[K]A
	clone func(A) A
}

func newTable[K comparable, A versioned](clone func(A) A) *table[K, A] {
	return &table[K, A]{rows: make(map[K]A), clone: clone}
}

func (t *table[K, A]) save(key K, a A) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.rows[key]; ok && cur.Version() != a.Version() {
		return errs.Wrapf(shared.ErrConcurrentModification, "stored version %d, saving version %d", cur.Version(), a.Version())
	}
	a.IncrementVersion()
	t.rows[key] = t.clone(a)
	return nil
}

func (t *table[K, A]) get(key K) A {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero A
	row, ok := t.rows[key]
	if !ok {
		return zero
	}
	return t.clone(row)
}

func (t *table[K, A]) delete(key K) {
	t.mu.Lock()
	delete(t.rows, key)
	t.mu.Unlock()
}

// filter returns matching rows ordered by cmp.
func (t *table[K, A]) filter(keep func(A) bool, cmp func(a, b A) int) []A {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]A, 0)
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	if cmp != nil {
		slices.SortFunc(out, cmp)
	}
	return out
}
