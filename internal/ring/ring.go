// Package ring implements a fixed-capacity FIFO that evicts its oldest entry
// on overflow.
package ring

// Buffer holds at most Cap items in insertion order.
type Buffer[T any] struct {
	items []T
	head  int
	size  int
}

// New returns an empty buffer. Capacities below one are raised to one.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v. When the buffer is full the oldest item is evicted and
// returned with ok set.
func (b *Buffer[T]) Push(v T) (evicted T, ok bool) {
	if b.size == len(b.items) {
		evicted = b.items[b.head]
		b.items[b.head] = v
		b.head = (b.head + 1) % len(b.items)
		return evicted, true
	}
	b.items[(b.head+b.size)%len(b.items)] = v
	b.size++
	return evicted, false
}

// At returns the i'th oldest item. It panics when i is out of range, like a
// slice index.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.size {
		panic("ring: index out of range")
	}
	return b.items[(b.head+i)%len(b.items)]
}

// Len reports the number of stored items.
func (b *Buffer[T]) Len() int { return b.size }

// Cap reports the capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Items returns a copy of the stored items, oldest first.
func (b *Buffer[T]) Items() []T {
	out := make([]T, b.size)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// Clear drops every item.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.size = 0
}
