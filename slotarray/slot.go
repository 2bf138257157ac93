package slotarray

// cell holds a value that is constructed and destroyed explicitly.
type cell[T any] struct {
	value T
}

func (c *cell[T]) construct(value T) *T {
	c.value = value
	return &c.value
}

// destroy zeroes the value so nothing it references is kept alive.
func (c *cell[T]) destroy() {
	var zero T
	c.value = zero
}

type slot[T any] struct {
	cell       cell[T]
	alive      bool
	retired    bool
	generation uint16

	// next free slot, or the slot itself at the tail of the free list
	next uint16
}

type page[T any] [PageSize]slot[T]
