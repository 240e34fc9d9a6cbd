package tristate

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// MarshalYAML implements the yaml.Marshaler interface.
// Present encodes the payload; Null and Absent encode as null. With the
// omitempty tag yaml.v3 consults IsZero and leaves Absent fields out.
func (v Value[T]) MarshalYAML() (any, error) {
	if v.state != StatePresent {
		return nil, nil
	}
	return v.value, nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface and decodes the
// node into a Present payload.
//
// yaml.v3 never hands null nodes to unmarshalers, so yaml.Unmarshal cannot
// produce Null: `key: null` leaves the field as it was. A zero field stays
// Absent and a field that already holds a value keeps that stale value.
// DecodeYAML is the decode path that keeps all three states.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	var val T
	if err := node.Decode(&val); err != nil {
		return errors.Wrap(err, "tristate: decode yaml payload")
	}
	*v = Present(val)
	return nil
}

// DecodeYAML decodes a YAML document into out by converting it to JSON first,
// so tri-state fields see `null` through UnmarshalJSON and missing keys stay
// Absent. Field names follow the json struct tags.
func DecodeYAML(data []byte, out any) error {
	if err := k8syaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "tristate: decode yaml document")
	}
	return nil
}

// EncodeYAML encodes in through its JSON form, honoring the json struct tags
// (including omitzero for Absent fields).
func EncodeYAML(in any) ([]byte, error) {
	b, err := k8syaml.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "tristate: encode yaml document")
	}
	return b, nil
}

var _ yaml.Marshaler = Value[int]{}
var _ yaml.Unmarshaler = &Value[int]{}
var _ yaml.IsZeroer = Value[int]{}
