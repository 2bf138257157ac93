package slotarray

import "fmt"

// Handle is a packed reference to a value in a SlotArray. The zero Handle is
// never valid.
type Handle uint32

const (
	aliveBit        = 1 << 31
	generationShift = 16
	generationMask  = 1<<15 - 1
	indexMask       = 1<<16 - 1

	maxGeneration = generationMask
)

func pack(alive bool, generation, index uint16) Handle {
	h := Handle(generation&generationMask)<<generationShift | Handle(index)
	if alive {
		h |= aliveBit
	}
	return h
}

func (h Handle) unpack() (alive bool, generation, index uint16) {
	return h&aliveBit != 0, uint16(h>>generationShift) & generationMask, uint16(h & indexMask)
}

func (h Handle) Alive() bool {
	return h&aliveBit != 0
}

func (h Handle) Generation() uint16 {
	return uint16(h>>generationShift) & generationMask
}

func (h Handle) Index() uint16 {
	return uint16(h & indexMask)
}

func (h Handle) String() string {
	return fmt.Sprintf("%d-%d", h.Index(), h.Generation())
}
