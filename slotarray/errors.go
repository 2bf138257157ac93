package slotarray

import "errors"

var (
	ErrStaleHandle       = errors.New("slotarray: stale handle")
	ErrOutOfRange        = errors.New("slotarray: handle out of range")
	ErrCapacityExhausted = errors.New("slotarray: capacity exhausted")
	ErrInvalidCapacity   = errors.New("slotarray: invalid capacity")
)
