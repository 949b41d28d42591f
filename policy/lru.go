// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

var (
	_ Policy[struct{}] = (*LRUPolicy[struct{}])(nil)
	_ Policy[struct{}] = (*MRUPolicy[struct{}])(nil)
)

// recency orders keys from least recently used (front) to most recently used
// (back). Inserts, reads and overwrites all count as a use.
type recency[K comparable] struct {
	used *order[K]
}

func (r *recency[K]) OnInsert(key K) {
	r.used.pushBack(key)
}

func (r *recency[K]) OnAccess(key K) {
	r.used.moveToBack(key)
}

func (r *recency[K]) OnUpdate(key K) {
	r.used.moveToBack(key)
}

func (r *recency[K]) Remove(key K) {
	r.used.remove(key)
}

func (r *recency[K]) Contains(key K) bool {
	return r.used.contains(key)
}

func (r *recency[K]) Len() int {
	return r.used.len()
}

func (r *recency[K]) Clear() {
	r.used.clear()
}

// LRUPolicy evicts the least recently used key.
type LRUPolicy[K comparable] struct {
	recency[K]
}

// NewLRU returns an empty LRU policy.
func NewLRU[K comparable]() *LRUPolicy[K] {
	return &LRUPolicy[K]{recency[K]{used: newOrder[K]()}}
}

func (p *LRUPolicy[K]) Victim() (K, bool) {
	return p.used.front()
}

func (p *LRUPolicy[K]) Keys() []K {
	return p.used.frontToBack()
}

// MRUPolicy keeps the same bookkeeping as LRUPolicy but evicts the most
// recently used key.
type MRUPolicy[K comparable] struct {
	recency[K]
}

// NewMRU returns an empty MRU policy.
func NewMRU[K comparable]() *MRUPolicy[K] {
	return &MRUPolicy[K]{recency[K]{used: newOrder[K]()}}
}

func (p *MRUPolicy[K]) Victim() (K, bool) {
	return p.used.back()
}

func (p *MRUPolicy[K]) Keys() []K {
	return p.used.backToFront()
}
