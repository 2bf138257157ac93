package slotarray

import "github.com/fulldump/slotdb/slotmap"

const (
	// MaxCapacity is the largest number of slots a handle can address.
	MaxCapacity = 1<<16 - 1

	// PageSize is the number of slots allocated at once when the array grows.
	PageSize = 256
)

// ClearPolicy and OverflowPolicy behave as in slotmap. Generations are 15 bits
// wide here, so overflow happens after 32768 reuses of the same slot.
type (
	ClearPolicy    = slotmap.ClearPolicy
	OverflowPolicy = slotmap.OverflowPolicy
)

const (
	ClearKeepGenerations  = slotmap.ClearKeepGenerations
	ClearResetGenerations = slotmap.ClearResetGenerations

	OverflowRetire = slotmap.OverflowRetire
	OverflowWrap   = slotmap.OverflowWrap
)

type Options struct {
	// MaxCapacity bounds the array. Zero means MaxCapacity.
	MaxCapacity int

	// Preallocate creates at least this many slots up front.
	Preallocate int

	Clear    ClearPolicy
	Overflow OverflowPolicy
}

func (o Options) normalize() (Options, error) {
	if o.MaxCapacity == 0 {
		o.MaxCapacity = MaxCapacity
	}
	if o.MaxCapacity < 0 || o.MaxCapacity > MaxCapacity {
		return o, ErrInvalidCapacity
	}
	if o.Preallocate < 0 || o.Preallocate > o.MaxCapacity {
		return o, ErrInvalidCapacity
	}
	return o, nil
}
