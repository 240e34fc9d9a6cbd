package tristate

import (
	"iter"
	"slices"
)

// Number is the set of payload types Sum and Product can aggregate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// Fold reduces a sequence of Values into one Value with the precedence
// Absent > Null > Present:
//
//   - the first Absent stops the scan and Absent is returned; later elements
//     are not pulled from seq,
//   - otherwise, if any element was Null, Null is returned after the scan
//     completes,
//   - otherwise Present(acc) is returned, where acc starts at init and fn is
//     applied to every payload in order.
//
// The scan keeps going after a Null because a later Absent must still win.
func Fold[E, A any](seq iter.Seq[Value[E]], init A, fn func(A, E) A) Value[A] {
	acc := init
	sawNull := false
	for v := range seq {
		switch v.state {
		case StateAbsent:
			return Absent[A]()
		case StateNull:
			sawNull = true
		default:
			if !sawNull {
				acc = fn(acc, v.value)
			}
		}
	}
	if sawNull {
		return Null[A]()
	}
	return Present(acc)
}

// Collect gathers every payload into a slice under the Fold precedence.
// An empty sequence yields Present of an empty, non-nil slice.
func Collect[E any](seq iter.Seq[Value[E]]) Value[[]E] {
	return Fold(seq, []E{}, func(acc []E, e E) []E {
		return append(acc, e)
	})
}

// CollectSlice is Collect over a slice.
func CollectSlice[E any](vals []Value[E]) Value[[]E] {
	return Collect(slices.Values(vals))
}

// CollectMap gathers keyed payloads into a map under the Fold precedence.
func CollectMap[K comparable, E any](seq iter.Seq2[K, Value[E]]) Value[map[K]E] {
	out := map[K]E{}
	sawNull := false
	for k, v := range seq {
		switch v.state {
		case StateAbsent:
			return Absent[map[K]E]()
		case StateNull:
			sawNull = true
		default:
			out[k] = v.value
		}
	}
	if sawNull {
		return Null[map[K]E]()
	}
	return Present(out)
}

// Sum adds every payload. An empty sequence yields Present(0).
func Sum[N Number](seq iter.Seq[Value[N]]) Value[N] {
	return Fold(seq, N(0), func(acc, n N) N {
		return acc + n
	})
}

// Product multiplies every payload. An empty sequence yields Present(1).
func Product[N Number](seq iter.Seq[Value[N]]) Value[N] {
	return Fold(seq, N(1), func(acc, n N) N {
		return acc * n
	})
}
