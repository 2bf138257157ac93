package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fulldump/slotdb/slotarray"
	"github.com/fulldump/slotdb/slotmap"
)

type point struct {
	X, Y, Z float64
}

// TestSlotMap measures insert, erase with reuse and a full iteration of the
// dense variant, without the http layer.
func TestSlotMap(c Config) {

	s := slotmap.New[point](slotmap.Options{})
	handles := make([]slotmap.Handle, 0, c.N)

	t0 := time.Now()
	for i := int64(0); i < c.N; i++ {
		h, err := s.Insert(point{X: float64(i)})
		if err != nil {
			fmt.Println("ERROR: insert:", err.Error())
			return
		}
		handles = append(handles, h)
	}
	report("slotmap inserted", c.N, time.Since(t0))

	rand.Shuffle(len(handles), func(i, j int) {
		handles[i], handles[j] = handles[j], handles[i]
	})

	t0 = time.Now()
	half := handles[:len(handles)/2]
	for _, h := range half {
		s.Erase(h)
	}
	for i := range half {
		half[i], _ = s.Insert(point{Y: float64(i)})
	}
	report("slotmap erased and reinserted", int64(len(half)), time.Since(t0))

	t0 = time.Now()
	sum := 0.0
	for _, v := range s.All() {
		sum += v.X + v.Y
	}
	report("slotmap iterated", int64(s.Len()), time.Since(t0))
	fmt.Println("checksum:", sum)

	fmt.Printf("slotmap stats: %+v\n", s.Stats())
}

// TestSlotArray does the same for the pinned variant, bounded to its maximum
// capacity.
func TestSlotArray(c Config) {

	n := min(c.N, slotarray.MaxCapacity)
	s, err := slotarray.New[point](slotarray.Options{})
	if err != nil {
		fmt.Println("ERROR: new slotarray:", err.Error())
		return
	}
	handles := make([]slotarray.Handle, 0, n)

	t0 := time.Now()
	for i := int64(0); i < n; i++ {
		h, _, err := s.Alloc(point{X: float64(i)})
		if err != nil {
			fmt.Println("ERROR: alloc:", err.Error())
			return
		}
		handles = append(handles, h)
	}
	report("slotarray allocated", n, time.Since(t0))

	rand.Shuffle(len(handles), func(i, j int) {
		handles[i], handles[j] = handles[j], handles[i]
	})

	t0 = time.Now()
	half := handles[:len(handles)/2]
	for _, h := range half {
		s.Free(h)
	}
	for i := range half {
		half[i], _, _ = s.Alloc(point{Y: float64(i)})
	}
	report("slotarray freed and reallocated", int64(len(half)), time.Since(t0))

	t0 = time.Now()
	sum := 0.0
	for _, v := range s.All() {
		sum += v.X + v.Y
	}
	report("slotarray iterated", int64(s.Len()), time.Since(t0))
	fmt.Println("checksum:", sum)

	fmt.Printf("slotarray stats: %+v\n", s.Stats())
}
