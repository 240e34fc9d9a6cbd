// Package tristate provides a three-state value container that separates a
// missing slot (Absent) from a slot holding an explicit null (Null) and a slot
// holding a payload (Present).
//
// The distinction matters wherever a schema, wire format or database column
// must tell "not sent" apart from "sent as null": partial updates, PATCH
// semantics, nullable columns and schema validation.
//
// The zero Value is Absent, so a struct field that a decoder never touches
// stays Absent while an explicit null decodes to Null.
package tristate

import "fmt"

// State identifies which of the three variants a Value holds.
type State uint8

const (
	// StateAbsent means the slot does not exist in the surrounding structure.
	StateAbsent State = iota
	// StateNull means the slot exists but is explicitly empty.
	StateNull
	// StatePresent means the slot holds a payload.
	StatePresent
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateNull:
		return "null"
	case StatePresent:
		return "present"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Value is a tri-state container. It is always exactly one of Absent, Null
// or Present(v). When the state is not Present the payload slot holds the
// zero T, so two Values compare equal exactly when their states match and,
// for Present, their payloads match.
type Value[T any] struct {
	value T
	state State
}

// Absent returns a Value in the Absent state.
func Absent[T any]() Value[T] {
	return Value[T]{}
}

// Null returns a Value in the Null state.
func Null[T any]() Value[T] {
	return Value[T]{state: StateNull}
}

// Present returns a Value holding v.
func Present[T any](v T) Value[T] {
	return Value[T]{value: v, state: StatePresent}
}

// Of builds a Value from a state tag. v is only kept when state is
// StatePresent. Unknown states yield Absent.
func Of[T any](state State, v T) Value[T] {
	switch state {
	case StatePresent:
		return Present(v)
	case StateNull:
		return Null[T]()
	default:
		return Absent[T]()
	}
}

// FromPtr converts a two-state optional. A nil pointer becomes Absent.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Absent[T]()
	}
	return Present(*p)
}

// FromOK converts a comma-ok pair. ok == false becomes Absent.
func FromOK[T any](v T, ok bool) Value[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(v)
}

// FromPtrPtr converts a doubly nested optional, preserving all three states:
// nil is Absent, a pointer to nil is Null and a pointer to a pointer to v is
// Present(v).
func FromPtrPtr[T any](pp **T) Value[T] {
	switch {
	case pp == nil:
		return Absent[T]()
	case *pp == nil:
		return Null[T]()
	default:
		return Present(**pp)
	}
}

// State returns the state tag.
func (v Value[T]) State() State {
	return v.state
}

// IsAbsent reports whether the slot does not exist.
func (v Value[T]) IsAbsent() bool {
	return v.state == StateAbsent
}

// IsNull reports whether the slot exists but is explicitly empty.
func (v Value[T]) IsNull() bool {
	return v.state == StateNull
}

// IsPresent reports whether the slot holds a payload.
func (v Value[T]) IsPresent() bool {
	return v.state == StatePresent
}

// IsDefined reports whether the slot exists, holding a payload or a null.
func (v Value[T]) IsDefined() bool {
	return v.state != StateAbsent
}

// IsNullish reports whether the slot holds no payload, either because it is
// Null or because it is Absent.
func (v Value[T]) IsNullish() bool {
	return v.state != StatePresent
}

// IsNil implements Nullable. Both Null and Absent count as nil.
func (v Value[T]) IsNil() bool {
	return v.IsNullish()
}

// IsZero reports whether the Value is Absent. encoding/json (omitzero) and
// gopkg.in/yaml.v3 (omitempty) consult it to drop Absent fields from records.
func (v Value[T]) IsZero() bool {
	return v.state == StateAbsent
}

// IsPresentAnd reports whether the Value is Present and pred holds for the payload.
func (v Value[T]) IsPresentAnd(pred func(T) bool) bool {
	return v.state == StatePresent && pred(v.value)
}

// IsAbsentOr reports true for Absent, pred(payload) for Present and false for Null.
func (v Value[T]) IsAbsentOr(pred func(T) bool) bool {
	switch v.state {
	case StatePresent:
		return pred(v.value)
	case StateNull:
		return false
	default:
		return true
	}
}

// IsNullOr reports true for Null and Absent, and pred(payload) for Present.
func (v Value[T]) IsNullOr(pred func(T) bool) bool {
	if v.state == StatePresent {
		return pred(v.value)
	}
	return true
}

// Get returns the payload and true for Present, the zero T and false otherwise.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == StatePresent
}

// Any returns the payload boxed in an interface, or nil when not Present.
func (v Value[T]) Any() any {
	if v.state != StatePresent {
		return nil
	}
	return v.value
}

// Ptr converts to a two-state optional: a pointer to a copy of the payload,
// or nil for both Null and Absent.
func (v Value[T]) Ptr() *T {
	if v.state != StatePresent {
		return nil
	}
	val := v.value
	return &val
}

// PtrPtr converts to a doubly nested optional. It is the inverse of FromPtrPtr.
func (v Value[T]) PtrPtr() **T {
	switch v.state {
	case StatePresent:
		val := v.value
		p := &val
		return &p
	case StateNull:
		var p *T
		return &p
	default:
		return nil
	}
}

// UnwrapOr returns the payload, or def for both Null and Absent.
func (v Value[T]) UnwrapOr(def T) T {
	if v.state == StatePresent {
		return v.value
	}
	return def
}

// UnwrapOrElse returns the payload, or the result of fn for both Null and Absent.
func (v Value[T]) UnwrapOrElse(fn func() T) T {
	if v.state == StatePresent {
		return v.value
	}
	return fn()
}

// UnwrapOrZero returns the payload, or the zero T for both Null and Absent.
func (v Value[T]) UnwrapOrZero() T {
	return v.value
}

// UnwrapOrNullDefault returns the payload when Present, absentDefault when
// Absent and nullDefault when Null. It is the only extractor that tells the
// two empty states apart.
func (v Value[T]) UnwrapOrNullDefault(absentDefault, nullDefault T) T {
	switch v.state {
	case StatePresent:
		return v.value
	case StateNull:
		return nullDefault
	default:
		return absentDefault
	}
}

// Unwrap returns the payload. It panics when the Value is Null or Absent,
// naming the state in the panic message.
func (v Value[T]) Unwrap() T {
	if v.state != StatePresent {
		panic(fmt.Sprintf("tristate: called Unwrap on %s value", article(v.state)))
	}
	return v.value
}

// Expect returns the payload. It panics with msg and the offending state when
// the Value is Null or Absent.
func (v Value[T]) Expect(msg string) T {
	if v.state != StatePresent {
		panic(fmt.Sprintf("%s: value was %s", msg, title(v.state)))
	}
	return v.value
}

// Take returns the current Value unchanged and leaves Absent in its place.
func (v *Value[T]) Take() Value[T] {
	old := *v
	*v = Absent[T]()
	return old
}

// TakeIf takes the Value only when it is Present and pred holds for the
// payload. pred may modify the payload through the pointer. Otherwise the
// slot is left alone and Absent is returned.
func (v *Value[T]) TakeIf(pred func(*T) bool) Value[T] {
	if v.state == StatePresent && pred(&v.value) {
		return v.Take()
	}
	return Absent[T]()
}

// Replace stores Present(val) and returns the previous Value.
func (v *Value[T]) Replace(val T) Value[T] {
	old := *v
	*v = Present(val)
	return old
}

// Insert stores Present(val) and returns a pointer to the stored payload.
func (v *Value[T]) Insert(val T) *T {
	*v = Present(val)
	return &v.value
}

// GetOrInsert stores Present(val) when the Value is Null or Absent and
// returns a pointer to the payload. An existing payload is kept.
func (v *Value[T]) GetOrInsert(val T) *T {
	if v.state != StatePresent {
		*v = Present(val)
	}
	return &v.value
}

// GetOrInsertWith is GetOrInsert with a lazily computed payload. fn is only
// called when the Value is Null or Absent.
func (v *Value[T]) GetOrInsertWith(fn func() T) *T {
	if v.state != StatePresent {
		*v = Present(fn())
	}
	return &v.value
}

// GetOrInsertZero is GetOrInsert with the zero T.
func (v *Value[T]) GetOrInsertZero() *T {
	if v.state != StatePresent {
		var zero T
		*v = Present(zero)
	}
	return &v.value
}

// AsPtr returns a Value holding a pointer into v's payload. The state is
// carried over; writes through the pointer change the payload in place.
func AsPtr[T any](v *Value[T]) Value[*T] {
	if v.state != StatePresent {
		return Of[*T](v.state, nil)
	}
	return Present(&v.value)
}

// Deref copies the pointed-to payload out of a Value of pointers. A Present
// nil pointer becomes Null.
func Deref[T any](v Value[*T]) Value[T] {
	if v.state != StatePresent {
		return Of(v.state, *new(T))
	}
	if v.value == nil {
		return Null[T]()
	}
	return Present(*v.value)
}

// Len returns 1 for Present and 0 otherwise.
func (v Value[T]) Len() int {
	if v.state == StatePresent {
		return 1
	}
	return 0
}

// IsEmpty reports whether Len is 0.
func (v Value[T]) IsEmpty() bool {
	return v.state != StatePresent
}

// AsSlice returns a one-element slice holding the payload, or nil.
func (v Value[T]) AsSlice() []T {
	if v.state != StatePresent {
		return nil
	}
	return []T{v.value}
}

// String renders Absent as "(absent)", Null as "null" and Present through fmt.
func (v Value[T]) String() string {
	switch v.state {
	case StatePresent:
		return fmt.Sprint(v.value)
	case StateNull:
		return "null"
	default:
		return "(absent)"
	}
}

// Equal reports whether a and b hold the same state and, when Present, equal payloads.
func Equal[T comparable](a, b Value[T]) bool {
	return a.state == b.state && (a.state != StatePresent || a.value == b.value)
}

// EqualFunc is Equal with a caller-supplied payload comparison.
func EqualFunc[T, U any](a Value[T], b Value[U], eq func(T, U) bool) bool {
	if a.state != b.state {
		return false
	}
	return a.state != StatePresent || eq(a.value, b.value)
}

func article(s State) string {
	if s == StateAbsent {
		return "an Absent"
	}
	return "a Null"
}

func title(s State) string {
	switch s {
	case StateAbsent:
		return "Absent"
	case StateNull:
		return "Null"
	default:
		return "Present"
	}
}

var _ Nullable = Value[int]{}
var _ Field = Value[int]{}
var _ fmt.Stringer = Value[int]{}
