package tristate

import "github.com/BurntSushi/toml"

// UnmarshalTOML implements the toml.Unmarshaler interface.
// TOML has no null token, so a key that is present always decodes to Present
// and a missing key leaves the field Absent. The primitive handed over by the
// TOML decoder is converted to T with mapstructure, matching toml struct tags
// for table payloads.
func (v *Value[T]) UnmarshalTOML(data any) error {
	return v.decodeAny(data, "toml")
}

var _ toml.Unmarshaler = &Value[int]{}
