package slotmap

import "slices"

// Storage is the backing container for the dense value array. The SlotMap only
// appends, pops the last element and accesses elements by position, so any
// random-access growable array can serve.
type Storage[T any] interface {
	Append(value T)
	// PopBack removes the last element. The vacated element must not keep
	// references alive.
	PopBack()
	At(i int) *T
	Len() int
	Cap() int
	// Reserve makes room for at least n elements without shrinking.
	Reserve(n int)
	Clear()
}

// SliceStorage is the default Storage, backed by a Go slice.
type SliceStorage[T any] struct {
	items []T
}

func NewSliceStorage[T any](capacity int) *SliceStorage[T] {
	return &SliceStorage[T]{
		items: make([]T, 0, capacity),
	}
}

func (s *SliceStorage[T]) Append(value T) {
	s.items = append(s.items, value)
}

func (s *SliceStorage[T]) PopBack() {
	last := len(s.items) - 1
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
}

func (s *SliceStorage[T]) At(i int) *T {
	return &s.items[i]
}

func (s *SliceStorage[T]) Len() int {
	return len(s.items)
}

func (s *SliceStorage[T]) Cap() int {
	return cap(s.items)
}

func (s *SliceStorage[T]) Reserve(n int) {
	if n > cap(s.items) {
		s.items = slices.Grow(s.items, n-len(s.items))
	}
}

func (s *SliceStorage[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Items exposes the live elements. The slice is invalidated by the next
// mutation of the storage.
func (s *SliceStorage[T]) Items() []T {
	return s.items
}
