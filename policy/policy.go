// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package policy implements the eviction disciplines used by bounded caches.
//
// A Policy only tracks keys. The cache that owns it stores the values, asks
// the policy for a victim when it is full, and reports every insertion,
// access, update and removal so the policy can keep its ordering current.
package policy

import (
	"strings"

	"github.com/jmgilman/go/errors"
)

// Policy tracks the keys of a cache and decides which one to evict next.
//
// Implementations are not safe for concurrent use; the owning cache
// serializes all calls.
type Policy[K comparable] interface {
	// OnInsert starts tracking a key that was not present before.
	OnInsert(key K)

	// OnAccess records a read hit on a tracked key.
	OnAccess(key K)

	// OnUpdate records an overwrite of a tracked key's value.
	OnUpdate(key K)

	// Victim returns the key that should be evicted next. It returns false
	// if no keys are tracked.
	Victim() (K, bool)

	// Remove stops tracking key. Unknown keys are ignored.
	Remove(key K)

	// Contains reports whether key is tracked.
	Contains(key K) bool

	// Len returns the number of tracked keys.
	Len() int

	// Keys returns the tracked keys in eviction order, next victim first.
	Keys() []K

	// Clear stops tracking every key.
	Clear()
}

// Kind names an eviction discipline.
type Kind int

const (
	// FIFO evicts the key inserted earliest.
	FIFO Kind = iota
	// LIFO evicts the key inserted most recently.
	LIFO
	// LRU evicts the key used least recently.
	LRU
	// MRU evicts the key used most recently.
	MRU
	// LFU evicts the key used least often, oldest insertion first on ties.
	LFU
)

var kindNames = [...]string{
	FIFO: "fifo",
	LIFO: "lifo",
	LRU:  "lru",
	MRU:  "mru",
	LFU:  "lfu",
}

// Kinds lists every supported discipline.
func Kinds() []Kind {
	return []Kind{FIFO, LIFO, LRU, MRU, LFU}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k names a supported discipline.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// ParseKind returns the Kind named by s, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	err := errors.Newf(errors.CodeInvalidInput, "unknown eviction policy %q", s)
	return 0, errors.WithContext(err, "supported", kindNames[:])
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Newf(errors.CodeInvalidInput, "unknown eviction policy %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// New returns an empty policy of the given kind.
func New[K comparable](kind Kind) (Policy[K], error) {
	switch kind {
	case FIFO:
		return NewFIFO[K](), nil
	case LIFO:
		return NewLIFO[K](), nil
	case LRU:
		return NewLRU[K](), nil
	case MRU:
		return NewMRU[K](), nil
	case LFU:
		return NewLFU[K](), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown eviction policy %d", int(kind))
	}
}
