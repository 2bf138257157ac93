package slotmap

import (
	"math"
	"slices"

	"github.com/fulldump/slotdb/freelist"
)

type slotState uint8

const (
	slotFree slotState = iota
	slotUsed
	slotRetired
)

// slot is one entry of the slot table. While the slot is free, pos holds the
// next-free link instead of a dense position.
type slot struct {
	pos        uint32
	generation uint32
	state      slotState
}

// table owns the slots, the free list and the growth policy.
type table struct {
	slots   []slot
	free    freelist.List[uint32]
	retired int
	options Options
}

func (t *table) Next(i uint32) uint32   { return t.slots[i].pos }
func (t *table) SetNext(i, next uint32) { t.slots[i].pos = next }

func (t *table) validate(h Handle) error {
	if uint64(h.Index) >= uint64(len(t.slots)) {
		return ErrOutOfRange
	}
	s := &t.slots[h.Index]
	if s.state != slotUsed || s.generation != h.Generation {
		return ErrStaleHandle
	}
	return nil
}

func (t *table) valid(h Handle) bool {
	if uint64(h.Index) >= uint64(len(t.slots)) {
		return false
	}
	s := &t.slots[h.Index]
	return s.state == slotUsed && s.generation == h.Generation
}

// allocate pops the oldest free slot, growing the table first when none is
// left. The generation is left untouched.
func (t *table) allocate() (uint32, error) {
	if t.free.Empty() {
		if err := t.grow(); err != nil {
			return 0, err
		}
	}
	i, _ := t.free.PopHead(t)
	t.slots[i].state = slotUsed
	return i, nil
}

// claim takes a specific free slot out of the free list.
func (t *table) claim(i uint32) error {
	if uint64(i) >= uint64(t.options.MaxSlots) {
		return ErrOutOfRange
	}
	for uint64(i) >= uint64(len(t.slots)) {
		if err := t.grow(); err != nil {
			return err
		}
	}

	switch t.slots[i].state {
	case slotUsed:
		return ErrSlotOccupied
	case slotRetired:
		// retired slots never come back, the index is lost for good
		return ErrCapacityExhausted
	}

	t.free.Remove(t, i)
	t.slots[i].state = slotUsed
	return nil
}

// release frees slot i: its generation moves forward and it goes to the tail
// of the free list.
func (t *table) release(i uint32) {
	s := &t.slots[i]
	if s.generation == math.MaxUint32 && t.options.Overflow == OverflowRetire {
		s.state = slotRetired
		t.retired++
		return
	}
	s.generation++
	s.state = slotFree
	t.free.PushTail(t, i)
}

func (t *table) nextSize() uint32 {
	n := uint64(len(t.slots)) * 2
	if n < uint64(t.options.InitialSlots) {
		n = uint64(t.options.InitialSlots)
	}
	if n > uint64(t.options.MaxSlots) {
		n = uint64(t.options.MaxSlots)
	}
	return uint32(n)
}

func (t *table) grow() error {
	if uint64(len(t.slots)) >= uint64(t.options.MaxSlots) {
		return ErrCapacityExhausted
	}
	t.growTo(t.nextSize())
	return nil
}

// growTo appends free slots, in index order, until the table holds n slots.
func (t *table) growTo(n uint32) {
	old := uint32(len(t.slots))
	if n <= old {
		return
	}
	t.slots = slices.Grow(t.slots, int(n-old))
	for i := old; i < n; i++ {
		t.slots = append(t.slots, slot{})
		t.free.PushTail(t, i)
	}
}

func (t *table) reserve(n int) error {
	if n <= len(t.slots) {
		return nil
	}
	if uint64(n) > uint64(t.options.MaxSlots) {
		return ErrCapacityExhausted
	}
	t.growTo(uint32(n))
	return nil
}

// resetGenerations turns every slot, retired ones included, into a fresh
// generation 0 free slot.
func (t *table) resetGenerations() {
	t.free.Reset()
	t.retired = 0
	for i := range t.slots {
		t.slots[i] = slot{}
		t.free.PushTail(t, uint32(i))
	}
}
