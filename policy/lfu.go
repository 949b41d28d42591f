// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"container/list"
	"maps"
	"slices"
)

var _ Policy[struct{}] = (*LFUPolicy[struct{}])(nil)

type lfuEntry[K comparable] struct {
	key       K
	frequency uint64
	// seq is assigned on insertion only; it orders keys sharing a frequency.
	seq uint64
}

// LFUPolicy evicts the least frequently used key. Among keys with the same
// frequency the one inserted earliest is evicted, regardless of when each of
// them reached that frequency.
//
// Every insert starts a key at frequency 1; every read hit and every
// overwrite adds 1. A key that is evicted and inserted again starts over.
type LFUPolicy[K comparable] struct {
	entries map[K]*list.Element
	// buckets maps a frequency to its keys, sorted by ascending seq.
	buckets      map[uint64]*list.List
	minFrequency uint64
	nextSeq      uint64
}

// NewLFU returns an empty LFU policy.
func NewLFU[K comparable]() *LFUPolicy[K] {
	return &LFUPolicy[K]{
		entries: make(map[K]*list.Element),
		buckets: make(map[uint64]*list.List),
	}
}

func (p *LFUPolicy[K]) OnInsert(key K) {
	if _, ok := p.entries[key]; ok {
		return
	}
	e := &lfuEntry[K]{
		key:       key,
		frequency: 1,
		seq:       p.nextSeq,
	}
	p.nextSeq++
	// The newest seq always sorts last.
	p.entries[key] = p.bucket(1).PushBack(e)
	p.minFrequency = 1
}

func (p *LFUPolicy[K]) OnAccess(key K) {
	p.increment(key)
}

func (p *LFUPolicy[K]) OnUpdate(key K) {
	p.increment(key)
}

func (p *LFUPolicy[K]) Victim() (K, bool) {
	if b, ok := p.buckets[p.minFrequency]; ok {
		return b.Front().Value.(*lfuEntry[K]).key, true
	}
	var zero K
	return zero, false
}

func (p *LFUPolicy[K]) Remove(key K) {
	elem, ok := p.entries[key]
	if !ok {
		return
	}
	e := elem.Value.(*lfuEntry[K])
	delete(p.entries, key)
	if p.unlink(elem, e.frequency) && e.frequency == p.minFrequency {
		p.resetMinFrequency()
	}
}

func (p *LFUPolicy[K]) Contains(key K) bool {
	_, ok := p.entries[key]
	return ok
}

func (p *LFUPolicy[K]) Len() int {
	return len(p.entries)
}

// Keys returns the tracked keys by ascending frequency, then by insertion.
func (p *LFUPolicy[K]) Keys() []K {
	out := make([]K, 0, len(p.entries))
	for _, freq := range slices.Sorted(maps.Keys(p.buckets)) {
		for elem := p.buckets[freq].Front(); elem != nil; elem = elem.Next() {
			out = append(out, elem.Value.(*lfuEntry[K]).key)
		}
	}
	return out
}

func (p *LFUPolicy[K]) Clear() {
	p.entries = make(map[K]*list.Element)
	p.buckets = make(map[uint64]*list.List)
	p.minFrequency = 0
}

// Frequency returns the use count of key.
func (p *LFUPolicy[K]) Frequency(key K) (uint64, bool) {
	elem, ok := p.entries[key]
	if !ok {
		return 0, false
	}
	return elem.Value.(*lfuEntry[K]).frequency, true
}

func (p *LFUPolicy[K]) increment(key K) {
	elem, ok := p.entries[key]
	if !ok {
		return
	}
	e := elem.Value.(*lfuEntry[K])
	if p.unlink(elem, e.frequency) && e.frequency == p.minFrequency {
		p.minFrequency = e.frequency + 1
	}
	e.frequency++
	p.entries[key] = p.insertSorted(p.bucket(e.frequency), e)
}

func (p *LFUPolicy[K]) bucket(freq uint64) *list.List {
	b, ok := p.buckets[freq]
	if !ok {
		b = list.New()
		p.buckets[freq] = b
	}
	return b
}

// unlink removes elem from the bucket for freq and reports whether that
// bucket became empty.
func (p *LFUPolicy[K]) unlink(elem *list.Element, freq uint64) bool {
	b := p.buckets[freq]
	b.Remove(elem)
	if b.Len() > 0 {
		return false
	}
	delete(p.buckets, freq)
	return true
}

// insertSorted places e in b after every entry inserted before it. The scan
// from the back is O(len(b)); promoted keys are usually the newest.
func (p *LFUPolicy[K]) insertSorted(b *list.List, e *lfuEntry[K]) *list.Element {
	for mark := b.Back(); mark != nil; mark = mark.Prev() {
		if mark.Value.(*lfuEntry[K]).seq < e.seq {
			return b.InsertAfter(e, mark)
		}
	}
	return b.PushFront(e)
}

func (p *LFUPolicy[K]) resetMinFrequency() {
	p.minFrequency = 0
	for freq := range p.buckets {
		if p.minFrequency == 0 || freq < p.minFrequency {
			p.minFrequency = freq
		}
	}
}
