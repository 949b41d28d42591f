// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

var _ Policy[struct{}] = (*FIFOPolicy[struct{}])(nil)

// FIFOPolicy evicts keys in the order they were inserted. Reads and
// overwrites do not change a key's position.
type FIFOPolicy[K comparable] struct {
	inserted *order[K]
}

// NewFIFO returns an empty FIFO policy.
func NewFIFO[K comparable]() *FIFOPolicy[K] {
	return &FIFOPolicy[K]{inserted: newOrder[K]()}
}

func (p *FIFOPolicy[K]) OnInsert(key K) {
	p.inserted.pushBack(key)
}

func (*FIFOPolicy[K]) OnAccess(K) {}

// OnUpdate is a no-op: an overwrite is not a second insertion.
func (*FIFOPolicy[K]) OnUpdate(K) {}

func (p *FIFOPolicy[K]) Victim() (K, bool) {
	return p.inserted.front()
}

func (p *FIFOPolicy[K]) Remove(key K) {
	p.inserted.remove(key)
}

func (p *FIFOPolicy[K]) Contains(key K) bool {
	return p.inserted.contains(key)
}

func (p *FIFOPolicy[K]) Len() int {
	return p.inserted.len()
}

func (p *FIFOPolicy[K]) Keys() []K {
	return p.inserted.frontToBack()
}

func (p *FIFOPolicy[K]) Clear() {
	p.inserted.clear()
}
