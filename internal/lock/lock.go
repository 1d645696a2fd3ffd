// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lock provides a keyed mutex: independent critical sections that
// serialize per key while never blocking unrelated keys. It backs the
// per-transfer_id ordering guarantees required across the Transfer and
// Refresh Managers (one transfer's mutations never block another's).
package lock

import "sync"

// Keyed hands out a *sync.Mutex per key, creating it on first use and
// reusing it afterward. The zero value is ready to use.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock blocks until the mutex for key is acquired. The returned func
// releases it; callers should defer the call.
func (k *Keyed) Lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
