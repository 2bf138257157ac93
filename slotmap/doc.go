// Package slotmap implements a dense generational handle map.
//
// A SlotMap stores values in a contiguous array and hands out a Handle for
// every inserted value. The handle is an (index, generation) pair naming a slot
// in a separate slot table; the slot records where the value currently lives in
// the dense array. Erasing a value moves the last value of the array into the
// hole, so values stay packed and iteration touches only live elements.
//
// # Handles
//
// Every slot carries a generation counter that is incremented when the slot is
// freed. A handle is valid while its generation matches the slot's generation
// and the slot is in use. Once the value is erased the handle can never become
// valid again, even after the slot is reused by a later insert.
//
// # Complexity
//
//   - Insert, Emplace: O(1) amortized, O(n) when the slot table or the value
//     array grows
//   - Erase, ErasePos, At, Get, Find, Unchecked: O(1)
//   - Reserve, ReserveSlots: O(n) worst case, O(1) when already large enough
//   - Clear: O(n)
//
// # Invalidation
//
// Positions and value pointers are not stable: ErasePos moves the last value
// into the erased position, and an insert may reallocate the value array.
// Handles are the only stable way to refer to a value.
//
// A SlotMap is not safe for concurrent use.
package slotmap
