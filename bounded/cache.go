// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bounded provides a fixed-capacity cache whose eviction
// discipline is chosen at construction.
//
// The cache owns the stored values and executes evictions; the configured
// policy.Policy only decides which key goes next. Put and Get never fail:
// a zero key or nil value makes Put a no-op, and Get reports a miss for
// zero or unknown keys.
package bounded

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/jmgilman/go/errors"

	"github.com/luxfi/policycache"
	"github.com/luxfi/policycache/policy"
)

var _ policycache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Entry is a key and its stored value.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a thread-safe cache holding at most Cap entries.
type Cache[K comparable, V any] struct {
	lock     sync.Mutex
	capacity int
	kind     policy.Kind
	items    map[K]V
	tracker  policy.Policy[K]
	onEvict  []func(K, V)
	log      *slog.Logger
}

// New creates an empty cache described by cfg.
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracker, err := policy.New[K](cfg.Policy)
	if err != nil {
		return nil, err
	}

	o := options[K, V]{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[K, V]{
		capacity: cfg.Capacity,
		kind:     cfg.Policy,
		items:    make(map[K]V, cfg.Capacity),
		tracker:  tracker,
		onEvict:  o.onEvict,
		log:      o.log.With(slog.String("policy", cfg.Policy.String())),
	}, nil
}

// Put stores value under key. Overwriting a present key refreshes its
// tracking state; adding a new key to a full cache first evicts the key the
// policy selects.
func (c *Cache[K, V]) Put(key K, value V) {
	if isZero(key) || isNil(value) {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.items[key]; ok {
		c.items[key] = value
		c.tracker.OnUpdate(key)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictVictim()
	}
	c.items[key] = value
	c.tracker.OnInsert(key)
}

// Get returns the value stored under key, if any.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if isZero(key) {
		return zero, false
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	value, ok := c.items[key]
	if !ok {
		return zero, false
	}
	c.tracker.OnAccess(key)
	return value, true
}

// Evict removes key without notifying eviction callbacks.
func (c *Cache[K, V]) Evict(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.items[key]; ok {
		delete(c.items, key)
		c.tracker.Remove(key)
	}
}

// Flush removes all entries.
func (c *Cache[K, V]) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.items = make(map[K]V, c.capacity)
	c.tracker.Clear()
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.items)
}

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// Policy returns the configured eviction discipline.
func (c *Cache[K, V]) Policy() policy.Kind {
	return c.kind
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return float64(len(c.items)) / float64(c.capacity)
}

// Show returns a snapshot of the entries, next eviction candidate first.
// It does not count as an access.
func (c *Cache[K, V]) Show() []Entry[K, V] {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := c.tracker.Keys()
	out := make([]Entry[K, V], 0, len(keys))
	for _, key := range keys {
		out = append(out, Entry[K, V]{Key: key, Value: c.items[key]})
	}
	return out
}

// Print writes "Current cache:" followed by one "key: value" line per
// entry, sorted by key.
func (c *Cache[K, V]) Print(w io.Writer) error {
	type line struct{ key, value string }

	c.lock.Lock()
	lines := make([]line, 0, len(c.items))
	for key, value := range c.items {
		lines = append(lines, line{key: fmt.Sprint(key), value: fmt.Sprint(value)})
	}
	c.lock.Unlock()

	slices.SortFunc(lines, func(a, b line) int {
		return cmp.Compare(a.key, b.key)
	})
	if _, err := fmt.Fprintln(w, "Current cache:"); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", l.key, l.value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that storage respects the capacity bound and that the
// policy tracks exactly the stored keys. A non-nil result is an internal
// bug, never a consequence of caller input.
func (c *Cache[K, V]) Validate() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.validate()
}

func (c *Cache[K, V]) validate() error {
	if len(c.items) > c.capacity {
		err := errors.New(errors.CodeInternal, "cache exceeds capacity")
		return errors.WithContextMap(err, map[string]interface{}{
			"len":      len(c.items),
			"capacity": c.capacity,
		})
	}
	for key := range c.items {
		if !c.tracker.Contains(key) {
			err := errors.New(errors.CodeInternal, "stored key is not tracked")
			return errors.WithContext(err, "key", key)
		}
	}
	if n := c.tracker.Len(); n != len(c.items) {
		err := errors.New(errors.CodeInternal, "policy tracks keys that are not stored")
		return errors.WithContextMap(err, map[string]interface{}{
			"tracked": n,
			"stored":  len(c.items),
		})
	}
	return nil
}

// evictVictim removes the policy's next victim. The caller holds the lock.
func (c *Cache[K, V]) evictVictim() {
	key, ok := c.tracker.Victim()
	if !ok {
		return
	}
	value, stored := c.items[key]
	if !stored {
		err := errors.WithContext(
			errors.New(errors.CodeInternal, "eviction victim is not stored"),
			"key", key,
		)
		c.log.Error("cache invariant violated", slog.Any("error", err))
		panic(err)
	}

	delete(c.items, key)
	c.tracker.Remove(key)
	c.log.Debug("evicted cache entry",
		slog.Any("key", key),
		slog.Int("len", len(c.items)),
	)
	for _, fn := range c.onEvict {
		fn(key, value)
	}
}

func isZero[K comparable](key K) bool {
	var zero K
	return key == zero
}

// isNil reports whether v is a nil interface or a nil pointer, map, slice,
// channel or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
