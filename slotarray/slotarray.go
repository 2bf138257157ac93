package slotarray

import (
	"fmt"
	"iter"

	"github.com/fulldump/slotdb/freelist"
)

// SlotArray is a bounded generational handle array with stable value
// addresses. Build one with New.
type SlotArray[T any] struct {
	pages   []*page[T]
	slots   int // slots created so far
	len     int
	retired int
	free    freelist.List[uint16]
	options Options
}

type Stats struct {
	Len          int `json:"len"`
	Cap          int `json:"cap"`
	MaxCap       int `json:"max_cap"`
	FreeSlots    int `json:"free_slots"`
	RetiredSlots int `json:"retired_slots"`
}

func New[T any](options Options) (*SlotArray[T], error) {
	options, err := options.normalize()
	if err != nil {
		return nil, err
	}

	s := &SlotArray[T]{
		options: options,
	}
	if err := s.Reserve(options.Preallocate); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SlotArray[T]) slot(i uint16) *slot[T] {
	return &s.pages[int(i)/PageSize][int(i)%PageSize]
}

func (s *SlotArray[T]) Next(i uint16) uint16 {
	return s.slot(i).next
}

func (s *SlotArray[T]) SetNext(i, next uint16) {
	s.slot(i).next = next
}

// grow creates the next batch of slots, up to the end of the current page or
// a new one, and links them to the free list in index order.
func (s *SlotArray[T]) grow() error {
	if s.slots >= s.options.MaxCapacity {
		return ErrCapacityExhausted
	}
	if s.slots == len(s.pages)*PageSize {
		s.pages = append(s.pages, new(page[T]))
	}
	end := min(len(s.pages)*PageSize, s.options.MaxCapacity)
	for i := s.slots; i < end; i++ {
		s.free.PushTail(s, uint16(i))
	}
	s.slots = end
	return nil
}

// Reserve creates slots until there are at least n of them.
func (s *SlotArray[T]) Reserve(n int) error {
	if n > s.options.MaxCapacity {
		return ErrCapacityExhausted
	}
	for s.slots < n {
		if err := s.grow(); err != nil {
			return err
		}
	}
	return nil
}

func (s *SlotArray[T]) allocate() (uint16, *slot[T], error) {
	if s.free.Empty() {
		if err := s.grow(); err != nil {
			return 0, nil, err
		}
	}
	i, _ := s.free.PopHead(s)
	sl := s.slot(i)
	sl.alive = true
	s.len++
	return i, sl, nil
}

func (s *SlotArray[T]) release(i uint16, sl *slot[T]) {
	sl.cell.destroy()
	sl.alive = false
	s.len--

	if sl.generation == maxGeneration && s.options.Overflow == OverflowRetire {
		sl.retired = true
		s.retired++
		return
	}
	sl.generation = (sl.generation + 1) & maxGeneration
	s.free.PushTail(s, i)
}

func (s *SlotArray[T]) validate(h Handle) (*slot[T], error) {
	alive, generation, index := h.unpack()
	if int(index) >= s.slots {
		return nil, ErrOutOfRange
	}
	sl := s.slot(index)
	if !alive || !sl.alive || sl.generation != generation {
		return nil, ErrStaleHandle
	}
	return sl, nil
}

// Alloc stores value and returns its handle and its stable address.
func (s *SlotArray[T]) Alloc(value T) (Handle, *T, error) {
	i, sl, err := s.allocate()
	if err != nil {
		return 0, nil, err
	}
	return pack(true, sl.generation, i), sl.cell.construct(value), nil
}

// AllocFunc lets init fill a zero value and then stores it. init runs before
// the array is touched, so a panic in init leaves the array as it was.
func (s *SlotArray[T]) AllocFunc(init func(value *T)) (Handle, *T, error) {
	var value T
	init(&value)
	return s.Alloc(value)
}

// Emplace stores the value returned by construct. construct runs before the
// array is touched: if it fails or panics, the array is left as it was.
func (s *SlotArray[T]) Emplace(construct func() (T, error)) (Handle, *T, error) {
	value, err := construct()
	if err != nil {
		return 0, nil, err
	}
	return s.Alloc(value)
}

// Get returns the value referenced by h, or nil if h is stale or out of range.
func (s *SlotArray[T]) Get(h Handle) *T {
	sl, err := s.validate(h)
	if err != nil {
		return nil
	}
	return &sl.cell.value
}

// At is Get with the reason of the failure.
func (s *SlotArray[T]) At(h Handle) (*T, error) {
	sl, err := s.validate(h)
	if err != nil {
		return nil, fmt.Errorf("at %s: %w", h, err)
	}
	return &sl.cell.value, nil
}

// Unchecked returns the value in the slot named by h without validating the
// generation. It panics if the index was never allocated.
func (s *SlotArray[T]) Unchecked(h Handle) *T {
	return &s.slot(h.Index()).cell.value
}

func (s *SlotArray[T]) Contains(h Handle) bool {
	_, err := s.validate(h)
	return err == nil
}

// Free destroys the value referenced by h. It returns false, and changes
// nothing, when h is not valid.
func (s *SlotArray[T]) Free(h Handle) bool {
	sl, err := s.validate(h)
	if err != nil {
		return false
	}
	s.release(h.Index(), sl)
	return true
}

// Clear frees every value. Slots are kept; what happens to their generations
// depends on Options.Clear.
func (s *SlotArray[T]) Clear() {
	if s.options.Clear == ClearResetGenerations {
		s.free.Reset()
		for i := 0; i < s.slots; i++ {
			*s.slot(uint16(i)) = slot[T]{}
			s.free.PushTail(s, uint16(i))
		}
		s.len = 0
		s.retired = 0
		return
	}

	for i := 0; i < s.slots; i++ {
		sl := s.slot(uint16(i))
		if sl.alive {
			s.release(uint16(i), sl)
		}
	}
}

func (s *SlotArray[T]) Len() int {
	return s.len
}

func (s *SlotArray[T]) Empty() bool {
	return s.len == 0
}

// Cap returns the number of slots created so far.
func (s *SlotArray[T]) Cap() int {
	return s.slots
}

func (s *SlotArray[T]) MaxCap() int {
	return s.options.MaxCapacity
}

func (s *SlotArray[T]) Stats() Stats {
	return Stats{
		Len:          s.len,
		Cap:          s.slots,
		MaxCap:       s.options.MaxCapacity,
		FreeSlots:    s.free.Len(),
		RetiredSlots: s.retired,
	}
}

// All iterates the live values in slot order. Freeing the visited value during
// the iteration is allowed.
func (s *SlotArray[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		c := s.Cursor()
		for c.Next() {
			if !yield(c.Handle(), c.Value()) {
				return
			}
		}
	}
}

// Backward is All in reverse slot order.
func (s *SlotArray[T]) Backward() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		c := s.CursorEnd()
		for c.Prev() {
			if !yield(c.Handle(), c.Value()) {
				return
			}
		}
	}
}
