// Package queue provides a generic double-ended queue used for the stock,
// the stock backup and the waste history.
package queue

import "iter"

const minCapacity = 8

// Deque is a ring buffer over a growable slice. The zero value is an empty
// deque ready to use. It is not safe for concurrent use.
type Deque[T comparable] struct {
	buf  []T
	head int
	n    int
}

// New creates a deque with room for capacity elements before growing
func New[T comparable](capacity int) *Deque[T] {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

// From creates a deque holding values in order
func From[T comparable](values ...T) *Deque[T] {
	d := New[T](len(values))
	for _, v := range values {
		d.PushBack(v)
	}
	return d
}

// Len returns the number of elements
func (d *Deque[T]) Len() int { return d.n }

// IsEmpty reports whether the deque has no elements
func (d *Deque[T]) IsEmpty() bool { return d.n == 0 }

// PushBack appends v at the tail
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[d.index(d.n)] = v
	d.n++
}

// PushFront inserts v at the head
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = v
	d.n++
}

// PopFront removes and returns the head. On an empty deque it returns the
// zero value and false.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return v, true
}

// PopBack removes and returns the tail. On an empty deque it returns the
// zero value and false.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.n == 0 {
		return zero, false
	}
	i := d.index(d.n - 1)
	v := d.buf[i]
	d.buf[i] = zero
	d.n--
	return v, true
}

// Front returns the head without removing it
func (d *Deque[T]) Front() (T, bool) {
	if d.n == 0 {
		var zero T
		return zero, false
	}
	return d.buf[d.head], true
}

// Back returns the tail without removing it
func (d *Deque[T]) Back() (T, bool) {
	if d.n == 0 {
		var zero T
		return zero, false
	}
	return d.buf[d.index(d.n-1)], true
}

// At returns the i-th element counting from the head
func (d *Deque[T]) At(i int) (T, bool) {
	if i < 0 || i >= d.n {
		var zero T
		return zero, false
	}
	return d.buf[d.index(i)], true
}

// Remove deletes the first element equal to v, scanning from the head.
// It reports whether anything was removed.
func (d *Deque[T]) Remove(v T) bool {
	for i := 0; i < d.n; i++ {
		if d.buf[d.index(i)] != v {
			continue
		}
		for j := i; j < d.n-1; j++ {
			d.buf[d.index(j)] = d.buf[d.index(j+1)]
		}
		var zero T
		d.buf[d.index(d.n-1)] = zero
		d.n--
		return true
	}
	return false
}

// RemoveAll deletes every element equal to v, keeping the order of the
// rest, and returns how many were removed
func (d *Deque[T]) RemoveAll(v T) int {
	kept := 0
	for i := 0; i < d.n; i++ {
		x := d.buf[d.index(i)]
		if x == v {
			continue
		}
		d.buf[d.index(kept)] = x
		kept++
	}
	var zero T
	for i := kept; i < d.n; i++ {
		d.buf[d.index(i)] = zero
	}
	removed := d.n - kept
	d.n = kept
	return removed
}

// Contains reports whether v is in the deque
func (d *Deque[T]) Contains(v T) bool {
	for i := 0; i < d.n; i++ {
		if d.buf[d.index(i)] == v {
			return true
		}
	}
	return false
}

// Clear removes every element, keeping the allocated buffer
func (d *Deque[T]) Clear() {
	clear(d.buf)
	d.head = 0
	d.n = 0
}

// All iterates from head to tail
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.n; i++ {
			if !yield(d.buf[d.index(i)]) {
				return
			}
		}
	}
}

// Values returns a copy of the elements from head to tail
func (d *Deque[T]) Values() []T {
	out := make([]T, 0, d.n)
	for v := range d.All() {
		out = append(out, v)
	}
	return out
}

func (d *Deque[T]) index(i int) int {
	return (d.head + i) % len(d.buf)
}

func (d *Deque[T]) grow() {
	if d.n < len(d.buf) {
		return
	}
	size := len(d.buf) * 2
	if size < minCapacity {
		size = minCapacity
	}
	buf := make([]T, size)
	for i := 0; i < d.n; i++ {
		buf[i] = d.buf[d.index(i)]
	}
	d.buf = buf
	d.head = 0
}
