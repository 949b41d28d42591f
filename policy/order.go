// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import "container/list"

// order is a sequence of distinct keys with O(1) lookup, removal and
// re-append. The front is the oldest position and the back the newest.
type order[K comparable] struct {
	elements map[K]*list.Element
	keys     *list.List
}

func newOrder[K comparable]() *order[K] {
	return &order[K]{
		elements: make(map[K]*list.Element),
		keys:     list.New(),
	}
}

// pushBack appends key, or moves it to the back if it is already present.
func (o *order[K]) pushBack(key K) {
	if elem, ok := o.elements[key]; ok {
		o.keys.MoveToBack(elem)
		return
	}
	o.elements[key] = o.keys.PushBack(key)
}

// moveToBack moves a present key to the back. Unknown keys are ignored.
func (o *order[K]) moveToBack(key K) {
	if elem, ok := o.elements[key]; ok {
		o.keys.MoveToBack(elem)
	}
}

func (o *order[K]) remove(key K) {
	if elem, ok := o.elements[key]; ok {
		o.keys.Remove(elem)
		delete(o.elements, key)
	}
}

func (o *order[K]) front() (K, bool) {
	return o.valueOf(o.keys.Front())
}

func (o *order[K]) back() (K, bool) {
	return o.valueOf(o.keys.Back())
}

func (o *order[K]) valueOf(elem *list.Element) (K, bool) {
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}

func (o *order[K]) contains(key K) bool {
	_, ok := o.elements[key]
	return ok
}

func (o *order[K]) len() int {
	return o.keys.Len()
}

// frontToBack returns the keys oldest first.
func (o *order[K]) frontToBack() []K {
	out := make([]K, 0, o.keys.Len())
	for elem := o.keys.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(K))
	}
	return out
}

// backToFront returns the keys newest first.
func (o *order[K]) backToFront() []K {
	out := make([]K, 0, o.keys.Len())
	for elem := o.keys.Back(); elem != nil; elem = elem.Prev() {
		out = append(out, elem.Value.(K))
	}
	return out
}

func (o *order[K]) clear() {
	o.elements = make(map[K]*list.Element)
	o.keys.Init()
}
