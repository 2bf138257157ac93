package freelist

import (
	"testing"

	"github.com/fulldump/biff"
)

type links []uint32

func (l links) Next(i uint32) uint32   { return l[i] }
func (l links) SetNext(i, next uint32) { l[i] = next }

func collect(l *List[uint32], s links) []uint32 {
	result := []uint32{}
	l.Walk(s, func(i uint32) bool {
		result = append(result, i)
		return true
	})
	return result
}

func TestList(t *testing.T) {

	biff.Alternative("Empty list", func(a *biff.A) {

		s := make(links, 8)
		l := &List[uint32]{}

		biff.AssertTrue(l.Empty())
		_, ok := l.PopHead(s)
		biff.AssertFalse(ok)

		a.Alternative("Push in index order", func(a *biff.A) {
			for i := uint32(0); i < 4; i++ {
				l.PushTail(s, i)
			}
			biff.AssertEqual(l.Len(), 4)
			biff.AssertEqual(collect(l, s), []uint32{0, 1, 2, 3})

			tail, _ := l.Tail()
			biff.AssertEqual(s[tail], tail) // tail is self-linked

			a.Alternative("Pop is FIFO", func(a *biff.A) {
				i, ok := l.PopHead(s)
				biff.AssertTrue(ok)
				biff.AssertEqual(i, uint32(0))

				l.PushTail(s, 0)
				biff.AssertEqual(collect(l, s), []uint32{1, 2, 3, 0})
			})

			a.Alternative("Drain", func(a *biff.A) {
				for want := uint32(0); want < 4; want++ {
					i, ok := l.PopHead(s)
					biff.AssertTrue(ok)
					biff.AssertEqual(i, want)
				}
				biff.AssertTrue(l.Empty())
				_, ok := l.Head()
				biff.AssertFalse(ok)
			})

			a.Alternative("Remove head", func(a *biff.A) {
				biff.AssertTrue(l.Remove(s, 0))
				biff.AssertEqual(collect(l, s), []uint32{1, 2, 3})
			})

			a.Alternative("Remove middle", func(a *biff.A) {
				biff.AssertTrue(l.Remove(s, 2))
				biff.AssertEqual(collect(l, s), []uint32{0, 1, 3})
				biff.AssertEqual(l.Len(), 3)
			})

			a.Alternative("Remove tail", func(a *biff.A) {
				biff.AssertTrue(l.Remove(s, 3))
				biff.AssertEqual(collect(l, s), []uint32{0, 1, 2})
				tail, _ := l.Tail()
				biff.AssertEqual(tail, uint32(2))
				biff.AssertEqual(s[2], uint32(2))

				l.PushTail(s, 3)
				biff.AssertEqual(collect(l, s), []uint32{0, 1, 2, 3})
			})

			a.Alternative("Remove missing", func(a *biff.A) {
				biff.AssertFalse(l.Remove(s, 7))
				biff.AssertEqual(l.Len(), 4)
			})

			a.Alternative("Reset", func(a *biff.A) {
				l.Reset()
				biff.AssertTrue(l.Empty())
				biff.AssertEqual(collect(l, s), []uint32{})
			})
		})

		a.Alternative("Single element", func(a *biff.A) {
			l.PushTail(s, 5)
			head, _ := l.Head()
			tail, _ := l.Tail()
			biff.AssertEqual(head, uint32(5))
			biff.AssertEqual(tail, uint32(5))

			biff.AssertTrue(l.Remove(s, 5))
			biff.AssertTrue(l.Empty())
		})
	})
}

type smallLinks []uint16

func (l smallLinks) Next(i uint16) uint16   { return l[i] }
func (l smallLinks) SetNext(i, next uint16) { l[i] = next }

func TestList_Uint16(t *testing.T) {
	s := make(smallLinks, 3)
	l := &List[uint16]{}
	l.PushTail(s, 2)
	l.PushTail(s, 0)
	l.PushTail(s, 1)

	got := []uint16{}
	for !l.Empty() {
		i, _ := l.PopHead(s)
		got = append(got, i)
	}

	biff.AssertEqual(got, []uint16{2, 0, 1})
}
