package slotmap

import (
	"fmt"
	"iter"
)

// SlotMap is a dense generational handle map. Build one with New or
// NewWithStorage; the zero value is not usable.
type SlotMap[T any] struct {
	table  table
	values Storage[T]

	// owners[p] is the slot that owns dense position p.
	owners []uint32
}

// Stats is a snapshot of the sizes of a SlotMap.
type Stats struct {
	Len          int `json:"len"`
	Cap          int `json:"cap"`
	Slots        int `json:"slots"`
	FreeSlots    int `json:"free_slots"`
	RetiredSlots int `json:"retired_slots"`
}

// New returns an empty SlotMap backed by a SliceStorage. No slot is created
// until the first insert.
func New[T any](options Options) *SlotMap[T] {
	return NewWithStorage[T](options, NewSliceStorage[T](0))
}

// NewWithStorage returns an empty SlotMap that keeps its values in storage.
// The storage must be empty and must not be used by anyone else.
func NewWithStorage[T any](options Options, storage Storage[T]) *SlotMap[T] {
	return &SlotMap[T]{
		table: table{
			options: options.normalize(),
		},
		values: storage,
	}
}

// Insert stores value and returns its handle.
func (m *SlotMap[T]) Insert(value T) (Handle, error) {
	i, err := m.table.allocate()
	if err != nil {
		return Handle{}, err
	}
	return m.place(i, value), nil
}

// Emplace stores the value returned by construct. construct runs before the
// map is touched: if it fails or panics, the map is left exactly as it was.
func (m *SlotMap[T]) Emplace(construct func() (T, error)) (Handle, error) {
	value, err := construct()
	if err != nil {
		return Handle{}, err
	}
	return m.Insert(value)
}

// InsertAt stores value in the free slot with the given index, growing the slot
// table if needed. The slot is unlinked from the free list, which costs O(k)
// in the number of free slots.
func (m *SlotMap[T]) InsertAt(value T, index uint32) (Handle, error) {
	if err := m.table.claim(index); err != nil {
		return Handle{}, err
	}
	return m.place(index, value), nil
}

// EmplaceAt is InsertAt with a constructor, with the same guarantees as
// Emplace.
func (m *SlotMap[T]) EmplaceAt(index uint32, construct func() (T, error)) (Handle, error) {
	value, err := construct()
	if err != nil {
		return Handle{}, err
	}
	return m.InsertAt(value, index)
}

func (m *SlotMap[T]) place(i uint32, value T) Handle {
	m.values.Append(value)
	m.owners = append(m.owners, i)

	s := &m.table.slots[i]
	s.pos = uint32(len(m.owners) - 1)
	return Handle{Index: i, Generation: s.generation}
}

// Erase removes the value referenced by h. It returns false, and changes
// nothing, when h is stale or out of range.
func (m *SlotMap[T]) Erase(h Handle) bool {
	if !m.table.valid(h) {
		return false
	}
	m.ErasePos(int(m.table.slots[h.Index].pos))
	return true
}

// ErasePos removes the value at dense position p by moving the last value
// into it. It returns p, which now holds the value that was last (or equals
// Len() if p was the last position). It panics if p is not in [0, Len()).
func (m *SlotMap[T]) ErasePos(p int) int {
	n := len(m.owners)
	if p < 0 || p >= n {
		panic(fmt.Sprintf("slotmap: position %d out of range [0, %d)", p, n))
	}

	last := n - 1
	owner := m.owners[p]
	if p != last {
		*m.values.At(p) = *m.values.At(last)
		moved := m.owners[last]
		m.owners[p] = moved
		m.table.slots[moved].pos = uint32(p)
	}

	m.values.PopBack()
	m.owners = m.owners[:last]
	m.table.release(owner)
	return p
}

// EraseRange removes the values at positions [first, last) and returns first.
// Values after last are moved into the range.
func (m *SlotMap[T]) EraseRange(first, last int) int {
	if first < 0 || first > last || last > len(m.owners) {
		panic(fmt.Sprintf("slotmap: range [%d, %d) out of range [0, %d)", first, last, len(m.owners)))
	}
	for p := last - 1; p >= first; p-- {
		m.ErasePos(p)
	}
	return first
}

// At returns a pointer to the value referenced by h. The error is
// ErrOutOfRange or ErrStaleHandle.
func (m *SlotMap[T]) At(h Handle) (*T, error) {
	if err := m.table.validate(h); err != nil {
		return nil, fmt.Errorf("at %s: %w", h, err)
	}
	return m.values.At(int(m.table.slots[h.Index].pos)), nil
}

// Get is At without the error detail.
func (m *SlotMap[T]) Get(h Handle) (*T, bool) {
	if !m.table.valid(h) {
		return nil, false
	}
	return m.values.At(int(m.table.slots[h.Index].pos)), true
}

func (m *SlotMap[T]) Contains(h Handle) bool {
	return m.table.valid(h)
}

// Unchecked returns the value referenced by h without validating it. The
// result is meaningless, and may panic, for a stale or out of range handle.
func (m *SlotMap[T]) Unchecked(h Handle) *T {
	return m.values.At(int(m.table.slots[h.Index].pos))
}

// Find returns the dense position of the value referenced by h, or Len() when
// h is not valid.
func (m *SlotMap[T]) Find(h Handle) int {
	if !m.table.valid(h) {
		return len(m.owners)
	}
	return int(m.table.slots[h.Index].pos)
}

// ValueAt returns the value at dense position p.
func (m *SlotMap[T]) ValueAt(p int) *T {
	return m.values.At(p)
}

// HandleAt returns the handle of the value at dense position p.
func (m *SlotMap[T]) HandleAt(p int) Handle {
	i := m.owners[p]
	return Handle{Index: i, Generation: m.table.slots[i].generation}
}

// Values returns the live values in dense order. With a SliceStorage the
// result aliases the map and is invalidated by the next mutation; other
// storages get a copy.
func (m *SlotMap[T]) Values() []T {
	if s, ok := m.values.(*SliceStorage[T]); ok {
		return s.Items()
	}
	result := make([]T, 0, len(m.owners))
	for p := range m.owners {
		result = append(result, *m.values.At(p))
	}
	return result
}

// All iterates the live values in dense order. The map must not be modified
// during the iteration.
func (m *SlotMap[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for p := 0; p < len(m.owners); p++ {
			if !yield(m.HandleAt(p), m.values.At(p)) {
				return
			}
		}
	}
}

// Backward is All in reverse dense order. Erasing the visited value during the
// iteration is allowed: it only moves values that were already visited.
func (m *SlotMap[T]) Backward() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for p := len(m.owners) - 1; p >= 0; p-- {
			if p >= len(m.owners) {
				continue
			}
			if !yield(m.HandleAt(p), m.values.At(p)) {
				return
			}
		}
	}
}

// Reserve makes room for n values without growing again. It never shrinks.
func (m *SlotMap[T]) Reserve(n int) error {
	if err := m.table.reserve(n); err != nil {
		return err
	}
	m.values.Reserve(n)
	if n > cap(m.owners) {
		owners := make([]uint32, len(m.owners), n)
		copy(owners, m.owners)
		m.owners = owners
	}
	return nil
}

// ReserveSlots grows the slot table to at least n slots. New slots go to the
// free list in index order.
func (m *SlotMap[T]) ReserveSlots(n int) error {
	return m.table.reserve(n)
}

// Clear erases every value. What happens to slot generations depends on
// Options.Clear.
func (m *SlotMap[T]) Clear() {
	if m.table.options.Clear == ClearResetGenerations {
		m.table.resetGenerations()
	} else {
		for _, owner := range m.owners {
			m.table.release(owner)
		}
	}
	m.values.Clear()
	m.owners = m.owners[:0]
}

func (m *SlotMap[T]) Len() int {
	return len(m.owners)
}

func (m *SlotMap[T]) Empty() bool {
	return len(m.owners) == 0
}

// Cap returns how many values fit before the value array or the slot table has
// to grow.
func (m *SlotMap[T]) Cap() int {
	return min(m.values.Cap(), len(m.table.slots))
}

// CapSlots returns the size of the slot table, free and retired slots included.
func (m *SlotMap[T]) CapSlots() int {
	return len(m.table.slots)
}

// MaxLen returns the largest number of values the map can ever hold.
func (m *SlotMap[T]) MaxLen() int {
	return int(m.table.options.MaxSlots)
}

func (m *SlotMap[T]) Stats() Stats {
	return Stats{
		Len:          len(m.owners),
		Cap:          m.Cap(),
		Slots:        len(m.table.slots),
		FreeSlots:    m.table.free.Len(),
		RetiredSlots: m.table.retired,
	}
}
