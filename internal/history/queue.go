// Package history provides a fixed-capacity ring buffer that remembers the
// most recent items and forgets the rest.
package history

// Queue is a forgetful log: a ring buffer over a pre-sized backing slice where
// position 0 is the most recently pushed item and position k is k items into
// the past.
type Queue[T any] struct {
	head     int
	size     int
	capacity int
	data     []T
}

// New creates a Queue that remembers up to capacity items. A capacity below 1
// panics.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic("history: capacity must be at least 1")
	}
	return &Queue[T]{
		capacity: capacity,
		data:     make([]T, capacity),
	}
}

// Push advances the head and writes item there, overwriting the oldest entry
// once the queue is full.
func (q *Queue[T]) Push(item T) {
	q.head = (q.head + 1) % q.capacity
	q.data[q.head] = item
	if q.size < q.capacity {
		q.size++
	}
}

// Get returns the item position places into the past.
func (q *Queue[T]) Get(position int) (T, bool) {
	if position < 0 || position >= q.size {
		var zero T
		return zero, false
	}
	return q.data[q.index(position)], true
}

// ReplaceCurrent overwrites the most recent item in place.
func (q *Queue[T]) ReplaceCurrent(item T) {
	if q.size == 0 {
		q.Push(item)
		return
	}
	q.data[q.head] = item
}

// All returns the live items, oldest first.
func (q *Queue[T]) All() []T {
	out := make([]T, 0, q.size)
	for pos := q.size - 1; pos >= 0; pos-- {
		out = append(out, q.data[q.index(pos)])
	}
	return out
}

func (q *Queue[T]) Size() int     { return q.size }
func (q *Queue[T]) Capacity() int { return q.capacity }
func (q *Queue[T]) Empty() bool   { return q.size == 0 }

// Clear forgets every item. Capacity is unchanged.
func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.data {
		q.data[i] = zero
	}
	q.head = 0
	q.size = 0
}

func (q *Queue[T]) index(position int) int {
	idx := q.head - position
	if idx < 0 {
		idx += q.capacity
	}
	return idx
}
