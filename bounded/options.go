// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bounded

import (
	"fmt"
	"io"
	"log/slog"
)

// Option customizes a Cache at construction.
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	onEvict []func(K, V)
	log     *slog.Logger
}

// WithOnEvict registers fn to be called once for every entry discarded to
// make room for a new key. Callbacks run in registration order while the
// cache lock is held, so they must not call back into the cache.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(o *options[K, V]) {
		if fn != nil {
			o.onEvict = append(o.onEvict, fn)
		}
	}
}

// WithLogger sets the logger used for eviction diagnostics.
func WithLogger[K comparable, V any](log *slog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		if log != nil {
			o.log = log
		}
	}
}

// PrintDiscards returns an eviction callback that writes "DISCARD: <key>"
// lines to w.
func PrintDiscards[K comparable, V any](w io.Writer) func(K, V) {
	return func(key K, _ V) {
		fmt.Fprintf(w, "DISCARD: %v\n", key)
	}
}
