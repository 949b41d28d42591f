// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

var _ Policy[struct{}] = (*LIFOPolicy[struct{}])(nil)

// LIFOPolicy treats the tracked keys as a stack and always evicts the top,
// the key inserted or overwritten most recently.
type LIFOPolicy[K comparable] struct {
	stack *order[K]
}

// NewLIFO returns an empty LIFO policy.
func NewLIFO[K comparable]() *LIFOPolicy[K] {
	return &LIFOPolicy[K]{stack: newOrder[K]()}
}

func (p *LIFOPolicy[K]) OnInsert(key K) {
	p.stack.pushBack(key)
}

func (*LIFOPolicy[K]) OnAccess(K) {}

// OnUpdate moves key to the top of the stack.
func (p *LIFOPolicy[K]) OnUpdate(key K) {
	p.stack.moveToBack(key)
}

func (p *LIFOPolicy[K]) Victim() (K, bool) {
	return p.stack.back()
}

func (p *LIFOPolicy[K]) Remove(key K) {
	p.stack.remove(key)
}

func (p *LIFOPolicy[K]) Contains(key K) bool {
	return p.stack.contains(key)
}

func (p *LIFOPolicy[K]) Len() int {
	return p.stack.len()
}

func (p *LIFOPolicy[K]) Keys() []K {
	return p.stack.backToFront()
}

func (p *LIFOPolicy[K]) Clear() {
	p.stack.clear()
}
