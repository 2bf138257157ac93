// Package slotarray implements a bounded generational handle array whose values
// never move.
//
// Values live inside their slot, in fixed-size pages that are never
// reallocated, so the pointer returned by Alloc stays valid until the value is
// freed. A Handle packs the slot index, the slot generation and an alive bit
// into 32 bits:
//
//	bit 31      alive
//	bits 16-30  generation (15 bits)
//	bits 0-15   index
//
// which bounds the array to MaxCapacity slots. Iteration scans the slots and
// skips the free ones, so it costs O(Cap()) rather than O(Len()).
//
// A SlotArray is not safe for concurrent use.
package slotarray
