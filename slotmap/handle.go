package slotmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Handle identifies a value stored in a SlotMap. Handles are compared by value
// and carry no ownership.
type Handle struct {
	Index      uint32
	Generation uint32
}

// String formats the handle as "<index>-<generation>".
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.Index), 10) + "-" + strconv.FormatUint(uint64(h.Generation), 10)
}

// ParseHandle is the inverse of Handle.String.
func ParseHandle(s string) (Handle, error) {
	index, generation, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return Handle{}, fmt.Errorf("%w: %q", ErrMalformedHandle, s)
	}

	i, err := strconv.ParseUint(index, 10, 32)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: index: %s", ErrMalformedHandle, err.Error())
	}
	g, err := strconv.ParseUint(generation, 10, 32)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: generation: %s", ErrMalformedHandle, err.Error())
	}

	return Handle{Index: uint32(i), Generation: uint32(g)}, nil
}
