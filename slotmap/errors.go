package slotmap

import "errors"

var (
	// ErrStaleHandle indicates the slot was freed (and maybe reused) after the
	// handle was issued.
	ErrStaleHandle = errors.New("slotmap: stale handle")

	// ErrOutOfRange indicates the handle index is beyond the slot table.
	ErrOutOfRange = errors.New("slotmap: handle out of range")

	// ErrCapacityExhausted indicates the slot table cannot grow any further.
	ErrCapacityExhausted = errors.New("slotmap: capacity exhausted")

	// ErrSlotOccupied indicates InsertAt targeted a slot that is not free.
	ErrSlotOccupied = errors.New("slotmap: slot occupied")

	// ErrMalformedHandle indicates a handle string could not be parsed.
	ErrMalformedHandle = errors.New("slotmap: malformed handle")
)
