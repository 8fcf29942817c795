// Package keylock provides a table of mutexes keyed by string. Entries are
// created on first use and dropped when the last holder releases them, so the
// table only ever holds keys that are locked or waited on.
package keylock

import (
	"context"
	"strings"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

type Table struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Table {
	return &Table{entries: map[string]*entry{}}
}

// Key joins parts into a single lock key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

func (t *Table) acquire(key string) *entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		t.entries[key] = e
	}

	e.refs++

	return e
}

func (t *Table) release(key string, e *entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(t.entries, key)
	}
}

// Lock blocks until key is held or ctx is done. The returned func unlocks it.
func (t *Table) Lock(ctx context.Context, key string) (func(), error) {
	e := t.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		t.release(key, e)

		return nil, ctx.Err()
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			<-e.sem
			t.release(key, e)
		})
	}, nil
}

// Len reports how many keys currently have holders or waiters.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
