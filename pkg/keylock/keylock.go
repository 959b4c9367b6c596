package keylock

import "sync"

// KeyLock provides a mutex per int64 key. The ledger uses it to serialize
// all mutations and balance recalculations for one customer while letting
// different customers proceed in parallel.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[int64]*lockEntry)}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyLock) Lock(key int64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. Entries are dropped from the map once
// no goroutine holds or waits on them, so the map stays bounded by the
// number of concurrently active customers.
func (k *KeyLock) Unlock(key int64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unheld key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
