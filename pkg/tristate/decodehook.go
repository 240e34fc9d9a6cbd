package tristate

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// explicitNull stands in for a nil map entry that targets a tri-state field.
// mapstructure skips nil inputs before running hooks, so without the marker
// an explicit null would be indistinguishable from a missing key.
type explicitNull struct{}

type anyDecoder interface {
	decodeAny(data any, tag string) error
}

var anyDecoderType = reflect.TypeOf((*anyDecoder)(nil)).Elem()

func isValueType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(anyDecoderType)
}

// DecodeHook returns a mapstructure hook that decodes into tri-state fields:
// a missing key leaves the field Absent, a nil entry becomes Null and any
// other entry becomes Present after being decoded into the payload type.
// Struct fields are matched by their mapstructure tag.
func DecodeHook() mapstructure.DecodeHookFuncType {
	return DecodeHookTag("mapstructure")
}

// DecodeHookTag is DecodeHook matching struct fields by the given tag name.
func DecodeHookTag(tag string) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to.Kind() != reflect.Struct || from == to {
			return data, nil
		}
		if !isValueType(to) {
			if m, ok := data.(map[string]any); ok {
				return markNulls(m, to, tag), nil
			}
			return data, nil
		}
		out := reflect.New(to)
		if err := out.Interface().(anyDecoder).decodeAny(data, tag); err != nil {
			return nil, err
		}
		return out.Elem().Interface(), nil
	}
}

func (v *Value[T]) decodeAny(data any, tag string) error {
	switch d := data.(type) {
	case explicitNull:
		*v = Null[T]()
		return nil
	case T:
		*v = Present(d)
		return nil
	}
	var val T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DecodeHookTag(tag),
		Result:     &val,
		TagName:    tag,
	})
	if err != nil {
		return errors.Wrap(err, "tristate: build decoder")
	}
	if err := dec.Decode(data); err != nil {
		return errors.Wrap(err, "tristate: decode payload")
	}
	*v = Present(val)
	return nil
}

// markNulls copies m, replacing nil entries that feed tri-state fields of the
// struct type st with explicitNull.
func markNulls(m map[string]any, st reflect.Type, tag string) map[string]any {
	var out map[string]any
	for key, val := range m {
		if val != nil || !targetsValue(st, key, tag) {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(m))
			for k, v := range m {
				out[k] = v
			}
		}
		out[key] = explicitNull{}
	}
	if out == nil {
		return m
	}
	return out
}

func targetsValue(st reflect.Type, key, tag string) bool {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tv, ok := f.Tag.Lookup(tag); ok {
			if n, _, _ := strings.Cut(tv, ","); n != "" {
				name = n
			}
		}
		if strings.EqualFold(name, key) {
			return isValueType(f.Type)
		}
	}
	return false
}
