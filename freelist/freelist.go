// Package freelist implements the intrusive FIFO chain of unused slots shared by
// the slot tables of slotmap and slotarray.
//
// The list owns no memory: the next-free link of every unused slot is stored in
// the slot itself and reached through the Links interface. The last slot of the
// chain links to itself, so a slot whose link equals its own index is the tail.
package freelist

// Index is the integer type used to address slots.
type Index interface {
	~uint16 | ~uint32
}

// Links gives the list access to the next-free field of each slot.
type Links[I Index] interface {
	Next(i I) I
	SetNext(i, next I)
}

// List is a singly linked FIFO of slot indices. The zero value is an empty list.
//
// Slots are pushed at the tail and popped from the head, so the slot that has
// been free for the longest time is reused first.
type List[I Index] struct {
	head I
	tail I
	n    int
}

// Len returns the number of free slots in the list.
func (l *List[I]) Len() int {
	return l.n
}

// Empty reports whether there is no free slot left.
func (l *List[I]) Empty() bool {
	return l.n == 0
}

// Head returns the slot that the next PopHead would return.
func (l *List[I]) Head() (I, bool) {
	if l.n == 0 {
		return 0, false
	}
	return l.head, true
}

// Tail returns the most recently pushed slot.
func (l *List[I]) Tail() (I, bool) {
	if l.n == 0 {
		return 0, false
	}
	return l.tail, true
}

// PushTail links slot i after the current tail. O(1).
func (l *List[I]) PushTail(links Links[I], i I) {
	links.SetNext(i, i)
	if l.n == 0 {
		l.head = i
	} else {
		links.SetNext(l.tail, i)
	}
	l.tail = i
	l.n++
}

// PopHead unlinks and returns the oldest free slot. O(1).
func (l *List[I]) PopHead(links Links[I]) (I, bool) {
	if l.n == 0 {
		return 0, false
	}
	i := l.head
	l.n--
	if l.n == 0 {
		l.head, l.tail = 0, 0
	} else {
		l.head = links.Next(i)
	}
	return i, true
}

// Remove unlinks slot i wherever it is in the chain. The predecessor of i is
// not stored anywhere, so this walks from the head: O(k) in the list length.
func (l *List[I]) Remove(links Links[I], i I) bool {
	if l.n == 0 {
		return false
	}
	if l.head == i {
		l.PopHead(links)
		return true
	}

	prev := l.head
	for prev != l.tail {
		next := links.Next(prev)
		if next != i {
			prev = next
			continue
		}
		if i == l.tail {
			links.SetNext(prev, prev)
			l.tail = prev
		} else {
			links.SetNext(prev, links.Next(i))
		}
		l.n--
		return true
	}

	return false
}

// Reset forgets every linked slot. Links stored in the slots are left as they
// are; callers rebuild the chain with PushTail.
func (l *List[I]) Reset() {
	l.head, l.tail, l.n = 0, 0, 0
}

// Walk calls f for every free slot from head to tail until f returns false.
func (l *List[I]) Walk(links Links[I], f func(i I) bool) {
	if l.n == 0 {
		return
	}
	i := l.head
	for {
		if !f(i) {
			return
		}
		if i == l.tail {
			return
		}
		i = links.Next(i)
	}
}
