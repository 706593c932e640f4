package infix

import "github.com/edwingeng/deque"

// stack is a LIFO of E on top of a deque.
type stack[E any] struct {
	d deque.Deque
}

func newStack[E any]() stack[E] {
	return stack[E]{d: deque.NewDeque()}
}

func (s stack[E]) push(v E) {
	s.d.PushBack(v)
}

// pop removes and returns the top of the stack. Panics if the stack is empty.
func (s stack[E]) pop() E {
	if s.d.Len() == 0 {
		panic("infix: pop from empty stack")
	}
	// Comma-ok so that nil interface values come back as the zero E.
	v, _ := s.d.PopBack().(E)
	return v
}

// top returns the top of the stack. ok is false if the stack is empty.
func (s stack[E]) top() (v E, ok bool) {
	if s.d.Len() == 0 {
		return v, false
	}
	v, _ = s.d.Back().(E)
	return v, true
}

func (s stack[E]) len() int {
	return s.d.Len()
}

// popn removes the top n elements and returns them in the order they were
// pushed, i.e. the top of the stack is last. Panics if there are fewer than n.
func (s stack[E]) popn(n int) []E {
	if s.d.Len() < n {
		panic("infix: popn past bottom of stack")
	}
	r := make([]E, n)
	for i := n - 1; i >= 0; i-- {
		r[i], _ = s.d.PopBack().(E)
	}
	return r
}
