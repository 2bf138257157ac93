package slotarray

// Cursor walks the live slots of a SlotArray in either direction. It sits
// between slots before the first Next or Prev, and after either returns
// false.
type Cursor[T any] struct {
	s   *SlotArray[T]
	pos int
}

// Cursor returns a cursor placed before the first slot.
func (s *SlotArray[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{s: s, pos: -1}
}

// CursorEnd returns a cursor placed after the last slot.
func (s *SlotArray[T]) CursorEnd() *Cursor[T] {
	return &Cursor[T]{s: s, pos: s.slots}
}

// Next moves to the next live slot. It returns false when there is none, and
// the cursor is left after the last slot.
func (c *Cursor[T]) Next() bool {
	if c.pos < -1 {
		c.pos = -1
	}
	for c.pos++; c.pos < c.s.slots; c.pos++ {
		if c.s.slot(uint16(c.pos)).alive {
			return true
		}
	}
	c.pos = c.s.slots
	return false
}

// Prev moves to the previous live slot. It returns false when there is none,
// and the cursor is left before the first slot.
func (c *Cursor[T]) Prev() bool {
	if c.pos > c.s.slots {
		c.pos = c.s.slots
	}
	for c.pos--; c.pos >= 0; c.pos-- {
		if c.s.slot(uint16(c.pos)).alive {
			return true
		}
	}
	c.pos = -1
	return false
}

// Handle returns the handle of the current slot. Only meaningful after Next or
// Prev returned true.
func (c *Cursor[T]) Handle() Handle {
	sl := c.s.slot(uint16(c.pos))
	return pack(true, sl.generation, uint16(c.pos))
}

func (c *Cursor[T]) Value() *T {
	return &c.s.slot(uint16(c.pos)).cell.value
}
