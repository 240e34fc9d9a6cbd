package tristate

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var nullToken = []byte("null")

// MarshalJSON implements the json.Marshaler interface.
// Present encodes the payload. Null and Absent both encode as null: a single
// value cannot tell them apart. Tag record fields with omitzero (encoding/json)
// or omitempty (the JSON API in this package) to leave Absent fields out.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.state != StatePresent {
		return nullToken, nil
	}
	b, err := json.Marshal(v.value)
	if err != nil {
		return nil, errors.Wrap(err, "tristate: encode payload")
	}
	return b, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// A null token decodes to Null and anything else to Present. Decoding never
// produces Absent; a missing record field simply leaves the zero Value, which
// is Absent.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, nullToken) {
		*v = Null[T]()
		return nil
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return errors.Wrap(err, "tristate: decode payload")
	}
	*v = Present(val)
	return nil
}

var _ json.Marshaler = Value[int]{}
var _ json.Unmarshaler = &Value[int]{}
