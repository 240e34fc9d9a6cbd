package tristate

import "github.com/pkg/errors"

var (
	// ErrNotPresent is the base error for reading a payload that is not there.
	ErrNotPresent = errors.New("tristate: value is not present")
	// ErrNull is returned by Result for a Null value.
	ErrNull = errors.Wrap(ErrNotPresent, "value is null")
	// ErrAbsent is returned by Result for an Absent value.
	ErrAbsent = errors.Wrap(ErrNotPresent, "value is absent")
)

// OkOr returns the payload and a nil error when Present, or the zero T and err
// when Null or Absent.
func (v Value[T]) OkOr(err error) (T, error) {
	if v.state == StatePresent {
		return v.value, nil
	}
	var zero T
	return zero, err
}

// OkOrElse is OkOr with a lazily built error. fn is only called when the
// Value is Null or Absent.
func (v Value[T]) OkOrElse(fn func() error) (T, error) {
	if v.state == StatePresent {
		return v.value, nil
	}
	var zero T
	return zero, fn()
}

// Result returns the payload, or ErrNull / ErrAbsent. Both match
// ErrNotPresent under errors.Is.
func (v Value[T]) Result() (T, error) {
	switch v.state {
	case StatePresent:
		return v.value, nil
	case StateNull:
		return v.value, ErrNull
	default:
		return v.value, ErrAbsent
	}
}
