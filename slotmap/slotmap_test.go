package slotmap

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/fulldump/biff"
)

// check verifies the bookkeeping that ties values, owners and slots together.
func check[T any](m *SlotMap[T]) error {
	if m.values.Len() != len(m.owners) {
		return fmt.Errorf("values %d, owners %d", m.values.Len(), len(m.owners))
	}
	used := 0
	for i, s := range m.table.slots {
		if s.state == slotUsed {
			used++
			if int(s.pos) >= len(m.owners) || m.owners[s.pos] != uint32(i) {
				return fmt.Errorf("slot %d points to position %d not owned by it", i, s.pos)
			}
		}
	}
	if used != len(m.owners) {
		return fmt.Errorf("used slots %d, len %d", used, len(m.owners))
	}
	free := 0
	m.table.free.Walk(&m.table, func(i uint32) bool {
		free++
		return m.table.slots[i].state == slotFree
	})
	if free != m.table.free.Len() {
		return fmt.Errorf("free list walk stopped at %d of %d", free, m.table.free.Len())
	}
	if used+free+m.table.retired != len(m.table.slots) {
		return fmt.Errorf("used %d + free %d + retired %d != slots %d", used, free, m.table.retired, len(m.table.slots))
	}
	return nil
}

func collect[T any](m *SlotMap[T]) []T {
	result := []T{}
	for _, v := range m.All() {
		result = append(result, *v)
	}
	return result
}

func TestSlotMap(t *testing.T) {

	biff.Alternative("SlotMap", func(a *biff.A) {

		m := New[string](Options{InitialSlots: 3})

		biff.AssertTrue(m.Empty())
		biff.AssertEqual(m.CapSlots(), 0)

		hA, _ := m.Insert("A")
		hB, _ := m.Insert("B")
		hC, err := m.Insert("C")
		biff.AssertNil(err)

		biff.AssertEqual(hA, Handle{Index: 0, Generation: 0})
		biff.AssertEqual(hB, Handle{Index: 1, Generation: 0})
		biff.AssertEqual(hC, Handle{Index: 2, Generation: 0})
		biff.AssertEqual(m.Len(), 3)
		biff.AssertEqual(m.CapSlots(), 3)

		a.Alternative("Erase and reuse", func(a *biff.A) {
			biff.AssertTrue(m.Erase(hB))
			biff.AssertEqual(m.Len(), 2)
			biff.AssertFalse(m.Contains(hB))
			biff.AssertEqual(collect(m), []string{"A", "C"})

			hD, err := m.Insert("D")
			biff.AssertNil(err)
			biff.AssertEqual(hD, Handle{Index: 1, Generation: 1})
			biff.AssertEqual(collect(m), []string{"A", "C", "D"})
			biff.AssertFalse(m.Contains(hB))
			biff.AssertNil(check(m))

			a.Alternative("Stale handle is rejected", func(a *biff.A) {
				v, err := m.At(hB)
				biff.AssertNil(v)
				biff.AssertTrue(errors.Is(err, ErrStaleHandle))
				biff.AssertEqual(m.Find(hB), m.Len())
				biff.AssertFalse(m.Erase(hB))
				biff.AssertEqual(m.Len(), 3)
			})
		})

		a.Alternative("At", func(a *biff.A) {
			v, err := m.At(hC)
			biff.AssertNil(err)
			biff.AssertEqual(*v, "C")

			*v = "C2"
			biff.AssertEqual(*m.Unchecked(hC), "C2")
		})

		a.Alternative("At out of range", func(a *biff.A) {
			_, err := m.At(Handle{Index: 99})
			biff.AssertTrue(errors.Is(err, ErrOutOfRange))
			_, ok := m.Get(Handle{Index: 99})
			biff.AssertFalse(ok)
		})

		a.Alternative("Find", func(a *biff.A) {
			biff.AssertEqual(m.Find(hA), 0)
			biff.AssertEqual(m.Find(hC), 2)
			biff.AssertEqual(m.HandleAt(2), hC)
			biff.AssertEqual(*m.ValueAt(1), "B")
		})

		a.Alternative("ErasePos", func(a *biff.A) {
			next := m.ErasePos(0)
			biff.AssertEqual(next, 0)
			biff.AssertEqual(*m.ValueAt(0), "C")
			biff.AssertEqual(m.Find(hC), 0)
			biff.AssertFalse(m.Contains(hA))
			biff.AssertNil(check(m))
		})

		a.Alternative("ErasePos last", func(a *biff.A) {
			next := m.ErasePos(2)
			biff.AssertEqual(next, m.Len())
			biff.AssertEqual(collect(m), []string{"A", "B"})
		})

		a.Alternative("EraseRange", func(a *biff.A) {
			m.Insert("D")
			m.Insert("E")

			first := m.EraseRange(1, 3)
			biff.AssertEqual(first, 1)
			biff.AssertEqual(m.Len(), 3)
			biff.AssertFalse(m.Contains(hB))
			biff.AssertFalse(m.Contains(hC))
			biff.AssertEqual(collect(m), []string{"A", "D", "E"})
			biff.AssertNil(check(m))
		})

		a.Alternative("EraseRange empty", func(a *biff.A) {
			biff.AssertEqual(m.EraseRange(1, 1), 1)
			biff.AssertEqual(m.Len(), 3)
		})

		a.Alternative("Backward", func(a *biff.A) {
			result := []string{}
			for _, v := range m.Backward() {
				result = append(result, *v)
			}
			biff.AssertEqual(result, []string{"C", "B", "A"})
		})

		a.Alternative("Backward erasing", func(a *biff.A) {
			for h, v := range m.Backward() {
				if *v != "B" {
					m.Erase(h)
				}
			}
			biff.AssertEqual(collect(m), []string{"B"})
			biff.AssertNil(check(m))
		})

		a.Alternative("Clear keeps generations", func(a *biff.A) {
			m.Clear()
			biff.AssertTrue(m.Empty())
			biff.AssertEqual(m.CapSlots(), 3)
			biff.AssertFalse(m.Contains(hA))

			h, _ := m.Insert("X")
			biff.AssertEqual(h, Handle{Index: 0, Generation: 1})
			biff.AssertFalse(m.Contains(hA))
			biff.AssertNil(check(m))
		})

		a.Alternative("Values", func(a *biff.A) {
			biff.AssertEqual(m.Values(), []string{"A", "B", "C"})
		})

		a.Alternative("Stats", func(a *biff.A) {
			m.Erase(hA)
			biff.AssertEqual(m.Stats(), Stats{
				Len:       2,
				Cap:       3,
				Slots:     3,
				FreeSlots: 1,
			})
		})
	})
}

func TestSlotMap_DefaultCapacityReusesOldestFreeSlot(t *testing.T) {
	m := New[string](Options{})

	m.Insert("A")
	hB, _ := m.Insert("B")
	m.Insert("C")
	m.Erase(hB)

	hD, _ := m.Insert("D")
	biff.AssertEqual(hD, Handle{Index: 3, Generation: 0})
	biff.AssertEqual(m.CapSlots(), DefaultInitialSlots)

	var last Handle
	for i := 4; i < DefaultInitialSlots; i++ {
		last, _ = m.Insert("filler")
	}
	biff.AssertEqual(last.Index, uint32(DefaultInitialSlots-1))

	reused, _ := m.Insert("E")
	biff.AssertEqual(reused, Handle{Index: 1, Generation: 1})
	biff.AssertEqual(m.CapSlots(), DefaultInitialSlots)

	grown, _ := m.Insert("F")
	biff.AssertEqual(grown, Handle{Index: DefaultInitialSlots, Generation: 0})
	biff.AssertEqual(m.CapSlots(), 2*DefaultInitialSlots)
}

func TestSlotMap_Emplace(t *testing.T) {

	biff.Alternative("Emplace", func(a *biff.A) {

		m := New[int](Options{InitialSlots: 2})
		h1, _ := m.Insert(1)
		before := m.Stats()

		a.Alternative("Success", func(a *biff.A) {
			h, err := m.Emplace(func() (int, error) {
				return 2, nil
			})
			biff.AssertNil(err)
			biff.AssertEqual(h, Handle{Index: 1})
			v, _ := m.Get(h)
			biff.AssertEqual(*v, 2)
		})

		a.Alternative("Constructor error leaves map untouched", func(a *biff.A) {
			failure := errors.New("boom")
			h, err := m.Emplace(func() (int, error) {
				return 0, failure
			})
			biff.AssertEqual(err, failure)
			biff.AssertEqual(h, Handle{})
			biff.AssertEqual(m.Stats(), before)
			biff.AssertTrue(m.Contains(h1))

			next, _ := m.Insert(3)
			biff.AssertEqual(next, Handle{Index: 1})
		})

		a.Alternative("Constructor panic leaves map untouched", func(a *biff.A) {
			func() {
				defer func() {
					biff.AssertEqual(recover(), "boom")
				}()
				m.Emplace(func() (int, error) {
					panic("boom")
				})
			}()
			biff.AssertEqual(m.Stats(), before)
			biff.AssertNil(check(m))
		})
	})
}

func TestSlotMap_InsertAt(t *testing.T) {

	biff.Alternative("InsertAt", func(a *biff.A) {

		m := New[string](Options{InitialSlots: 4})
		m.Insert("A")

		a.Alternative("Free slot", func(a *biff.A) {
			h, err := m.InsertAt("B", 2)
			biff.AssertNil(err)
			biff.AssertEqual(h, Handle{Index: 2})
			biff.AssertNil(check(m))

			next, _ := m.Insert("C")
			biff.AssertEqual(next.Index, uint32(1))
			next, _ = m.Insert("D")
			biff.AssertEqual(next.Index, uint32(3))
			biff.AssertEqual(m.CapSlots(), 4)
			biff.AssertNil(check(m))
		})

		a.Alternative("Free list tail", func(a *biff.A) {
			_, err := m.InsertAt("B", 3)
			biff.AssertNil(err)
			m.Insert("C")
			m.Insert("D")
			biff.AssertEqual(m.table.free.Len(), 0)
			biff.AssertNil(check(m))
		})

		a.Alternative("Occupied slot", func(a *biff.A) {
			_, err := m.InsertAt("B", 0)
			biff.AssertTrue(errors.Is(err, ErrSlotOccupied))
			biff.AssertEqual(m.Len(), 1)
		})

		a.Alternative("Beyond the slot table", func(a *biff.A) {
			h, err := m.InsertAt("B", 10)
			biff.AssertNil(err)
			biff.AssertEqual(h, Handle{Index: 10})
			biff.AssertEqual(m.CapSlots(), 16)
			biff.AssertNil(check(m))
		})

		a.Alternative("Beyond MaxLen", func(a *biff.A) {
			small := New[string](Options{MaxSlots: 4})
			_, err := small.InsertAt("B", 4)
			biff.AssertTrue(errors.Is(err, ErrOutOfRange))
		})

		a.Alternative("EmplaceAt", func(a *biff.A) {
			h, err := m.EmplaceAt(1, func() (string, error) {
				return "B", nil
			})
			biff.AssertNil(err)
			v, _ := m.Get(h)
			biff.AssertEqual(*v, "B")
		})
	})
}

func TestSlotMap_CapacityExhausted(t *testing.T) {
	m := New[int](Options{InitialSlots: 2, MaxSlots: 5})

	for i := 0; i < 5; i++ {
		if _, err := m.Insert(i); err != nil {
			t.Fatalf("insert %d: %s", i, err)
		}
	}
	biff.AssertEqual(m.CapSlots(), 5)
	biff.AssertEqual(m.MaxLen(), 5)

	_, err := m.Insert(5)
	biff.AssertTrue(errors.Is(err, ErrCapacityExhausted))
	biff.AssertEqual(m.Len(), 5)

	m.Erase(m.HandleAt(0))
	_, err = m.Insert(5)
	biff.AssertNil(err)
}

func TestSlotMap_Reserve(t *testing.T) {
	m := New[int](Options{})

	biff.AssertNil(m.Reserve(100))
	biff.AssertEqual(m.CapSlots(), 100)
	biff.AssertTrue(m.Cap() >= 100)
	biff.AssertTrue(m.CapSlots() >= m.Cap())

	biff.AssertNil(m.Reserve(10))
	biff.AssertEqual(m.CapSlots(), 100)

	biff.AssertNil(m.ReserveSlots(150))
	biff.AssertEqual(m.CapSlots(), 150)

	h, _ := m.Insert(1)
	biff.AssertEqual(h.Index, uint32(0))

	small := New[int](Options{MaxSlots: 10})
	biff.AssertTrue(errors.Is(small.Reserve(11), ErrCapacityExhausted))
	biff.AssertEqual(small.CapSlots(), 0)
}

func TestSlotMap_ClearResetGenerations(t *testing.T) {
	m := New[string](Options{InitialSlots: 2, Clear: ClearResetGenerations})

	hA, _ := m.Insert("A")
	m.Erase(hA)
	hA, _ = m.Insert("A")
	biff.AssertEqual(hA, Handle{Index: 1})

	m.Clear()
	biff.AssertTrue(m.Empty())
	biff.AssertEqual(m.table.slots[0].generation, uint32(0))

	h, _ := m.Insert("B")
	biff.AssertEqual(h, Handle{Index: 0, Generation: 0})
	h, _ = m.Insert("C")
	biff.AssertEqual(h, Handle{Index: 1, Generation: 0})
	// the old handle aliases the new value
	biff.AssertTrue(m.Contains(hA))
	biff.AssertNil(check(m))
}

func TestSlotMap_GenerationOverflow(t *testing.T) {

	biff.Alternative("Generation overflow", func(a *biff.A) {

		a.Alternative("Retire", func(a *biff.A) {
			m := New[int](Options{InitialSlots: 1})
			h, _ := m.Insert(1)
			m.table.slots[h.Index].generation = math.MaxUint32

			m.Erase(Handle{Index: h.Index, Generation: math.MaxUint32})
			biff.AssertEqual(m.Stats().RetiredSlots, 1)

			next, err := m.Insert(2)
			biff.AssertNil(err)
			biff.AssertEqual(next, Handle{Index: 1})
			biff.AssertNil(check(m))

			_, err = m.InsertAt(3, 0)
			biff.AssertTrue(errors.Is(err, ErrCapacityExhausted))
		})

		a.Alternative("Retire on Clear", func(a *biff.A) {
			m := New[int](Options{InitialSlots: 1})
			m.Insert(1)
			m.table.slots[0].generation = math.MaxUint32
			m.Clear()
			biff.AssertEqual(m.Stats().RetiredSlots, 1)
			biff.AssertNil(check(m))
		})

		a.Alternative("Wrap", func(a *biff.A) {
			m := New[int](Options{InitialSlots: 1, Overflow: OverflowWrap})
			h, _ := m.Insert(1)
			m.table.slots[h.Index].generation = math.MaxUint32

			m.Erase(Handle{Index: h.Index, Generation: math.MaxUint32})
			next, _ := m.Insert(2)
			biff.AssertEqual(next, Handle{Index: 0, Generation: 0})
			biff.AssertEqual(m.Stats().RetiredSlots, 0)
		})
	})
}

func TestSlotMap_ErasePosPanics(t *testing.T) {
	m := New[int](Options{})
	m.Insert(1)

	defer func() {
		if recover() == nil {
			t.Fatalf("ErasePos(1) on a map of length 1 should panic")
		}
	}()
	m.ErasePos(1)
}

type countingStorage[T any] struct {
	SliceStorage[T]
	appends int
}

func (s *countingStorage[T]) Append(value T) {
	s.appends++
	s.SliceStorage.Append(value)
}

func TestSlotMap_CustomStorage(t *testing.T) {
	storage := &countingStorage[string]{}
	m := NewWithStorage[string](Options{}, storage)

	m.Insert("A")
	h, _ := m.Insert("B")
	m.Erase(h)

	biff.AssertEqual(storage.appends, 2)
	biff.AssertEqual(storage.Len(), 1)
	biff.AssertEqual(m.Values(), []string{"A"})
	biff.AssertEqual(storage.items[:2][1], "")
}

func TestSlotMap_Model(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	m := New[int](Options{InitialSlots: 4})

	live := map[Handle]int{}
	dead := []Handle{}

	for step := 0; step < 20000; step++ {
		switch op := r.Intn(10); {
		case op < 5 || len(live) == 0:
			h, err := m.Insert(step)
			if err != nil {
				t.Fatalf("step %d: insert: %s", step, err)
			}
			if _, exists := live[h]; exists {
				t.Fatalf("step %d: handle %s issued twice", step, h)
			}
			live[h] = step
		case op < 9:
			for h := range live {
				if !m.Erase(h) {
					t.Fatalf("step %d: erase %s failed", step, h)
				}
				delete(live, h)
				dead = append(dead, h)
				break
			}
		default:
			m.Clear()
			for h := range live {
				dead = append(dead, h)
			}
			clear(live)
		}

		if m.Len() != len(live) {
			t.Fatalf("step %d: len %d, expected %d", step, m.Len(), len(live))
		}
		if step%100 == 0 {
			if err := check(m); err != nil {
				t.Fatalf("step %d: %s", step, err)
			}
			for h, expected := range live {
				v, err := m.At(h)
				if err != nil || *v != expected {
					t.Fatalf("step %d: handle %s: %v", step, h, err)
				}
			}
			for _, h := range dead {
				if m.Contains(h) {
					t.Fatalf("step %d: stale handle %s is valid", step, h)
				}
			}
		}
	}

	seen := 0
	for h, v := range m.All() {
		if live[h] != *v {
			t.Fatalf("iteration: handle %s holds %d, expected %d", h, *v, live[h])
		}
		seen++
	}
	if seen != len(live) {
		t.Fatalf("iteration visited %d, expected %d", seen, len(live))
	}
}

func TestHandle_String(t *testing.T) {
	h := Handle{Index: 12, Generation: 3}
	biff.AssertEqual(h.String(), "12-3")

	parsed, err := ParseHandle("12-3")
	biff.AssertNil(err)
	biff.AssertEqual(parsed, h)

	for _, s := range []string{"", "12", "a-3", "12-b", "-1-2", "4294967296-0"} {
		_, err := ParseHandle(s)
		if !errors.Is(err, ErrMalformedHandle) {
			t.Fatalf("ParseHandle(%q): expected ErrMalformedHandle, got %v", s, err)
		}
	}
}

func BenchmarkSlotMap_Insert(b *testing.B) {
	m := New[int](Options{})
	for i := 0; i < b.N; i++ {
		m.Insert(i)
	}
}

func BenchmarkSlotMap_InsertErase(b *testing.B) {
	m := New[int](Options{})
	handles := make([]Handle, 0, 1024)
	for i := 0; i < 1024; i++ {
		h, _ := m.Insert(i)
		handles = append(handles, h)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % len(handles)
		m.Erase(handles[j])
		handles[j], _ = m.Insert(i)
	}
}

func BenchmarkSlotMap_Get(b *testing.B) {
	m := New[int](Options{})
	handles := make([]Handle, 0, 1024)
	for i := 0; i < 1024; i++ {
		h, _ := m.Insert(i)
		handles = append(handles, h)
	}

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		v, _ := m.Get(handles[i%len(handles)])
		sum += *v
	}
	_ = sum
}

func BenchmarkSlotMap_Iterate(b *testing.B) {
	m := New[int](Options{})
	for i := 0; i < 1024; i++ {
		m.Insert(i)
	}

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		for _, v := range m.All() {
			sum += *v
		}
	}
	_ = sum
}
