package tristate

import (
	"reflect"
	"unsafe"

	jsonitor "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// JSON is a json-iterator API compatible with encoding/json whose record
// encoder treats an Absent tri-state field as empty, so a field tagged
// `json:",omitempty"` is dropped from the output when Absent and kept (as
// null) when Null.
var JSON = newJSONAPI()

// Marshal encodes v with the JSON API.
func Marshal(v any) ([]byte, error) {
	return JSON.Marshal(v)
}

// Unmarshal decodes data into v with the JSON API.
func Unmarshal(data []byte, v any) error {
	return JSON.Unmarshal(data, v)
}

func newJSONAPI() jsonitor.API {
	api := jsonitor.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&omitAbsentExtension{})
	return api
}

type absenter interface {
	IsAbsent() bool
}

var absenterType = reflect2.TypeOfPtr((*absenter)(nil)).Elem()

// omitAbsentExtension decorates encoders of types that report absence.
type omitAbsentExtension struct {
	jsonitor.DummyExtension
}

func (e *omitAbsentExtension) DecorateEncoder(typ reflect2.Type, encoder jsonitor.ValEncoder) jsonitor.ValEncoder {
	if !typ.Implements(absenterType) {
		return encoder
	}
	return &omitAbsentEncoder{typ: typ, inner: encoder}
}

type omitAbsentEncoder struct {
	typ   reflect2.Type
	inner jsonitor.ValEncoder
}

func (e *omitAbsentEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	if e.typ.Kind() == reflect.Ptr && *(*unsafe.Pointer)(ptr) == nil {
		return true
	}
	if a, ok := e.typ.UnsafeIndirect(ptr).(absenter); ok {
		return a.IsAbsent()
	}
	return e.inner.IsEmpty(ptr)
}

func (e *omitAbsentEncoder) Encode(ptr unsafe.Pointer, stream *jsonitor.Stream) {
	e.inner.Encode(ptr, stream)
}
