// Package signal provides typed per-component signals. A component declares
// one Signal field per event it emits; callers connect callbacks to it.
package signal

// Subscription identifies a connected callback.
type Subscription uint64

type slot[T any] struct {
	id   Subscription
	fn   func(T) bool
	dead bool
}

// Signal delivers values of type T to connected callbacks, synchronously and
// in connection order. It is not safe for concurrent use.
type Signal[T any] struct {
	next  Subscription
	slots []*slot[T]
}

// Connect registers fn and returns a handle for Disconnect. A true return
// from fn is reported by Emit.
func (s *Signal[T]) Connect(fn func(T) bool) Subscription {
	if fn == nil {
		return 0
	}
	s.next++
	s.slots = append(s.slots, &slot[T]{id: s.next, fn: fn})
	return s.next
}

// Listen registers a callback that never asks for the event to be consumed.
func (s *Signal[T]) Listen(fn func(T)) Subscription {
	if fn == nil {
		return 0
	}
	return s.Connect(func(v T) bool {
		fn(v)
		return false
	})
}

// Disconnect removes a callback. Unknown or already removed handles are
// ignored. A callback removed during Emit is not called later in that Emit.
func (s *Signal[T]) Disconnect(id Subscription) {
	for i, sl := range s.slots {
		if sl.id != id {
			continue
		}
		sl.dead = true
		s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
		return
	}
}

// Emit calls every connected callback with v and reports whether any of them
// returned true. Callbacks connected during Emit are not called until the
// next Emit.
func (s *Signal[T]) Emit(v T) bool {
	if len(s.slots) == 0 {
		return false
	}
	snapshot := make([]*slot[T], len(s.slots))
	copy(snapshot, s.slots)
	handled := false
	for _, sl := range snapshot {
		if sl.dead {
			continue
		}
		if sl.fn(v) {
			handled = true
		}
	}
	return handled
}

// Len reports the number of connected callbacks.
func (s *Signal[T]) Len() int {
	return len(s.slots)
}
