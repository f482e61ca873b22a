package trigger

// Handle identifies a registered handler so it can be removed later.
type Handle uint64

type entry[T any] struct {
	handle Handle
	fn     func(T)
}

// Event is an ordered list of handlers invoked synchronously. Handlers
// added or removed while the event is being invoked take effect on the
// next invocation.
type Event[T any] struct {
	next    Handle
	entries []entry[T]
}

// Add registers fn and returns its handle. A nil fn is ignored.
func (e *Event[T]) Add(fn func(T)) Handle {
	if fn == nil {
		return 0
	}
	e.next++
	e.entries = append(e.entries, entry[T]{handle: e.next, fn: fn})
	return e.next
}

func (e *Event[T]) Remove(h Handle) bool {
	for i, en := range e.entries {
		if en.handle != h {
			continue
		}
		entries := make([]entry[T], 0, len(e.entries)-1)
		entries = append(entries, e.entries[:i]...)
		e.entries = append(entries, e.entries[i+1:]...)
		return true
	}
	return false
}

func (e *Event[T]) Len() int {
	return len(e.entries)
}

// Invoke calls every handler in registration order.
func (e *Event[T]) Invoke(arg T) {
	// Add appends and Remove copies, so this slice header stays a stable
	// snapshot for the whole loop.
	entries := e.entries
	for _, en := range entries {
		en.fn(arg)
	}
}
