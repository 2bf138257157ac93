package slotmap

import "math"

const (
	// DefaultInitialSlots is the size of the slot table after the first growth.
	DefaultInitialSlots = 20

	// MaxSlots is the largest slot table a SlotMap can hold. Slot indices are
	// uint32, so the last representable index is MaxSlots-1.
	MaxSlots = math.MaxUint32
)

// ClearPolicy decides what Clear does with slot generations.
type ClearPolicy int

const (
	// ClearKeepGenerations releases every used slot as Erase would, bumping its
	// generation. Handles issued before Clear stay stale forever.
	ClearKeepGenerations ClearPolicy = iota

	// ClearResetGenerations sets every slot back to generation 0. Handles issued
	// before Clear may become valid again once their slot is reused.
	ClearResetGenerations
)

// OverflowPolicy decides what happens when a slot generation cannot be
// incremented any further.
type OverflowPolicy int

const (
	// OverflowRetire takes the slot out of circulation. It is never reused, so
	// no stale handle can alias a new value.
	OverflowRetire OverflowPolicy = iota

	// OverflowWrap restarts the generation at 0 and keeps reusing the slot.
	OverflowWrap
)

// Options configure a SlotMap.
type Options struct {
	// InitialSlots is the slot table size after the first growth. Zero means
	// DefaultInitialSlots.
	InitialSlots uint32

	// MaxSlots bounds the slot table. Zero means MaxSlots.
	MaxSlots uint32

	Clear    ClearPolicy
	Overflow OverflowPolicy
}

func (o Options) normalize() Options {
	if o.MaxSlots == 0 {
		o.MaxSlots = MaxSlots
	}
	if o.InitialSlots == 0 {
		o.InitialSlots = DefaultInitialSlots
	}
	if o.InitialSlots > o.MaxSlots {
		o.InitialSlots = o.MaxSlots
	}
	return o
}
