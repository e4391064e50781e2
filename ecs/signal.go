package ecs

// Listener is a registered callback on a Signal. The pointer is the
// listener's identity: the same *Listener may be added more than once and
// Remove drops the first occurrence.
type Listener[T any] struct {
	fn func(T)
}

// NewListener wraps fn in a Listener handle.
func NewListener[T any](fn func(T)) *Listener[T] {
	return &Listener[T]{fn: fn}
}

// Signal is a synchronous multi-listener notification primitive.
// Listeners run in registration order on the caller's goroutine.
type Signal[T any] struct {
	listeners []*Listener[T]
}

// NewSignal creates an empty signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Add appends a listener. Duplicates are allowed and each one is invoked.
func (s *Signal[T]) Add(l *Listener[T]) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// Listen wraps fn in a new Listener, adds it and returns the handle so it
// can be removed later.
func (s *Signal[T]) Listen(fn func(T)) *Listener[T] {
	l := NewListener(fn)
	s.Add(l)
	return l
}

// Remove drops the first occurrence of l and reports whether it was found.
func (s *Signal[T]) Remove(l *Listener[T]) bool {
	for i, registered := range s.listeners {
		if registered != l {
			continue
		}
		// Copy instead of splicing in place: an Emit in progress holds the
		// old backing array.
		next := make([]*Listener[T], 0, len(s.listeners)-1)
		next = append(next, s.listeners[:i]...)
		next = append(next, s.listeners[i+1:]...)
		s.listeners = next
		return true
	}
	return false
}

// Emit invokes every listener registered when the call started.
// Listeners added during the emit are not run in this pass; listeners
// removed during the emit still are.
func (s *Signal[T]) Emit(value T) {
	snapshot := s.listeners
	for _, l := range snapshot {
		l.fn(value)
	}
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}
