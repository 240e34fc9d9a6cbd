package tristate

// Combinators that keep the payload type are methods. Those that change it
// are package functions, since Go methods cannot introduce type parameters.

// Pair holds the two payloads joined by Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Result carries the outcome of a fallible computation so it can sit inside
// a Value and be pulled out again with Transpose.
type Result[T any] struct {
	Val T
	Err error
}

// Ok wraps a successful outcome.
func Ok[T any](v T) Result[T] {
	return Result[T]{Val: v}
}

// Err wraps a failed outcome.
func Err[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Map applies fn to a Present payload. Null and Absent pass through as themselves.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if v.state != StatePresent {
		return Value[U]{state: v.state}
	}
	return Present(fn(v.value))
}

// MapOr applies fn to a Present payload, or returns def for Null and Absent.
func MapOr[T, U any](v Value[T], def U, fn func(T) U) U {
	if v.state != StatePresent {
		return def
	}
	return fn(v.value)
}

// MapOrElse applies fn to a Present payload, or returns def() for Null and Absent.
func MapOrElse[T, U any](v Value[T], def func() U, fn func(T) U) U {
	if v.state != StatePresent {
		return def()
	}
	return fn(v.value)
}

// MapOrZero applies fn to a Present payload, or returns the zero U.
func MapOrZero[T, U any](v Value[T], fn func(T) U) U {
	var zero U
	return MapOr(v, zero, fn)
}

// TryMap applies a fallible fn to a Present payload. An error from fn is
// returned with an Absent value; Null and Absent pass through with a nil error.
func TryMap[T, U any](v Value[T], fn func(T) (U, error)) (Value[U], error) {
	if v.state != StatePresent {
		return Value[U]{state: v.state}, nil
	}
	out, err := fn(v.value)
	if err != nil {
		return Absent[U](), err
	}
	return Present(out), nil
}

// Inspect calls fn with a Present payload and returns v unchanged.
func (v Value[T]) Inspect(fn func(T)) Value[T] {
	if v.state == StatePresent {
		fn(v.value)
	}
	return v
}

// Filter keeps a Present payload only when pred holds. A rejected payload
// becomes Absent, never Null. Null and Absent are returned unchanged.
func (v Value[T]) Filter(pred func(T) bool) Value[T] {
	if v.state == StatePresent && !pred(v.value) {
		return Absent[T]()
	}
	return v
}

// And returns other when v is Present. Otherwise v's own empty state is
// returned; the left operand's state wins over the right one's.
func And[T, U any](v Value[T], other Value[U]) Value[U] {
	if v.state != StatePresent {
		return Value[U]{state: v.state}
	}
	return other
}

// AndThen returns fn(payload) when v is Present, or v's own empty state.
func AndThen[T, U any](v Value[T], fn func(T) Value[U]) Value[U] {
	if v.state != StatePresent {
		return Value[U]{state: v.state}
	}
	return fn(v.value)
}

// Or returns v when Present, otherwise other.
func (v Value[T]) Or(other Value[T]) Value[T] {
	if v.state == StatePresent {
		return v
	}
	return other
}

// OrElse returns v when Present, otherwise fn().
func (v Value[T]) OrElse(fn func() Value[T]) Value[T] {
	if v.state == StatePresent {
		return v
	}
	return fn()
}

// Xor returns the Present operand when exactly one operand is Present. Two
// Present operands yield Absent, as does any pairing that involves Absent.
// Null with Null stays Null.
func (v Value[T]) Xor(other Value[T]) Value[T] {
	switch {
	case v.state == StatePresent && other.state != StatePresent:
		return v
	case v.state != StatePresent && other.state == StatePresent:
		return other
	case v.state == StateNull && other.state == StateNull:
		return v
	default:
		return Absent[T]()
	}
}

// Zip joins two Present payloads into a Pair. If either side is Absent the
// result is Absent; otherwise, if either side is Null, the result is Null.
func Zip[A, B any](a Value[A], b Value[B]) Value[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] {
		return Pair[A, B]{First: x, Second: y}
	})
}

// ZipWith combines two Present payloads with fn under the same precedence as Zip.
func ZipWith[A, B, R any](a Value[A], b Value[B], fn func(A, B) R) Value[R] {
	switch {
	case a.state == StatePresent && b.state == StatePresent:
		return Present(fn(a.value, b.value))
	case a.state == StateAbsent || b.state == StateAbsent:
		return Absent[R]()
	default:
		return Null[R]()
	}
}

// Reduce is ZipWith under the name used when folding two values pairwise.
func Reduce[A, B, R any](a Value[A], b Value[B], fn func(A, B) R) Value[R] {
	return ZipWith(a, b, fn)
}

// Unzip splits a Value of a Pair. A Null or Absent input yields that state on both sides.
func Unzip[A, B any](v Value[Pair[A, B]]) (Value[A], Value[B]) {
	if v.state != StatePresent {
		return Value[A]{state: v.state}, Value[B]{state: v.state}
	}
	return Present(v.value.First), Present(v.value.Second)
}

// Transpose turns a Value of a Result into a Result of a Value:
// Present(Ok(x)) is (Present(x), nil), Present(Err(e)) is (Absent, e), and
// Null and Absent are returned as themselves with a nil error.
func Transpose[T any](v Value[Result[T]]) (Value[T], error) {
	if v.state != StatePresent {
		return Value[T]{state: v.state}, nil
	}
	if v.value.Err != nil {
		return Absent[T](), v.value.Err
	}
	return Present(v.value.Val), nil
}

// Flatten removes one level of nesting. A Present outer value yields the
// inner value verbatim; otherwise the outer state is kept.
func Flatten[T any](v Value[Value[T]]) Value[T] {
	if v.state != StatePresent {
		return Value[T]{state: v.state}
	}
	return v.value
}
