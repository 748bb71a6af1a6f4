// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package settings

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// The process-wide default. Concurrent first callers share a single Load
// through the singleflight group; failures are returned to every waiter but
// not stored, so a later call retries after the environment is fixed.
var (
	defaultMu    sync.RWMutex
	defaultValue *Settings
	defaultGroup singleflight.Group
)

// Default returns the memoized Settings for this process, resolving them from
// the environment on first use.
func Default() (Settings, error) {
	defaultMu.RLock()
	if defaultValue != nil {
		s := *defaultValue
		defaultMu.RUnlock()
		return s, nil
	}
	defaultMu.RUnlock()

	v, err, _ := defaultGroup.Do("default", func() (any, error) {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		if defaultValue != nil {
			return *defaultValue, nil
		}
		s, err := Load(nil)
		if err != nil {
			return nil, err
		}
		defaultValue = &s
		return s, nil
	})
	if err != nil {
		return Settings{}, err
	}
	return v.(Settings), nil
}

// Reset discards the memoized default so the next Default call resolves the
// environment again.
func Reset() {
	defaultMu.Lock()
	defaultValue = nil
	defaultMu.Unlock()
}
