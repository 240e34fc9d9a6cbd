package tristate

import "iter"

// All returns a sequence that yields the payload once when Present and
// nothing otherwise. Each call derives a fresh sequence.
func (v Value[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if v.state == StatePresent {
			yield(v.value)
		}
	}
}

// Backward is All traversed from the back. With at most one element both
// directions yield the same thing.
func (v Value[T]) Backward() iter.Seq[T] {
	return v.All()
}

// Pointers yields a pointer to the payload when Present. Writing through the
// pointer mutates the payload in place and never changes the state.
func (v *Value[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		if v.state == StatePresent {
			yield(&v.value)
		}
	}
}

// Iter returns a cursor over a copy of the payload.
func (v Value[T]) Iter() *Iter[T] {
	return &Iter[T]{item: v.value, left: v.Len()}
}

// IterMut returns a cursor over a pointer to the payload.
func (v *Value[T]) IterMut() *Iter[*T] {
	if v.state != StatePresent {
		return &Iter[*T]{}
	}
	return &Iter[*T]{item: &v.value, left: 1}
}

// Iter is a double-ended cursor of known length over zero or one element.
// Once exhausted it stays exhausted.
type Iter[T any] struct {
	item T
	left int
}

// Len returns the number of elements not yet produced.
func (it *Iter[T]) Len() int {
	return it.left
}

// Next produces the element from the front.
func (it *Iter[T]) Next() (T, bool) {
	return it.pop()
}

// NextBack produces the element from the back.
func (it *Iter[T]) NextBack() (T, bool) {
	return it.pop()
}

// Seq adapts the remaining elements to an iter.Seq, consuming them.
func (it *Iter[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.pop()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

func (it *Iter[T]) pop() (T, bool) {
	var zero T
	if it.left == 0 {
		return zero, false
	}
	it.left = 0
	v := it.item
	it.item = zero
	return v, true
}
