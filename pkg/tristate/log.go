package tristate

import "github.com/rs/zerolog"

// MarshalZerologObject implements zerolog.LogObjectMarshaler so a Value can be
// logged with Event.Object. It always writes the state and, when Present, the payload.
func (v Value[T]) MarshalZerologObject(e *zerolog.Event) {
	e.Str("state", v.state.String())
	if v.state == StatePresent {
		e.Interface("value", v.value)
	}
}

var _ zerolog.LogObjectMarshaler = Value[int]{}
