// Package tristatevalidator teaches go-playground/validator about tristate
// values.
//
// Register installs a custom type func so ordinary tags such as min, max or
// email see the payload of a Present field. For Null and Absent fields the
// func yields a nil pointer, so put omitempty in front of payload rules that
// should only run when a value was supplied. State tags go first in the tag
// list since a leading omitempty stops validation of an empty field.
//
// Three state tags are added, and they only apply to struct fields:
//
//	notnull           the field is not Null (Absent passes)
//	defined           the field is not Absent (Null passes)
//	required_present  the field is Present
package tristatevalidator

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tansive/tristate/pkg/tristate"
)

// Tags registered by RegisterTags.
const (
	TagNotNull         = "notnull"          // field is not Null
	TagDefined         = "defined"          // field is not Absent
	TagRequiredPresent = "required_present" // field is Present
)

var (
	instance *validator.Validate
	once     sync.Once
)

// V returns the shared validator with the state tags and the common payload
// types registered.
func V() *validator.Validate {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New returns a fresh validator with the state tags and the common payload
// types registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterTags(v); err != nil {
		panic(err)
	}
	Register[string](v)
	Register[int](v)
	Register[int64](v)
	Register[float64](v)
	Register[bool](v)
	Register[[]string](v)
	Register[map[string]any](v)
	return v
}

// RegisterTags adds the notnull, defined and required_present tags to v.
func RegisterTags(v *validator.Validate) error {
	// The tags must run for nil pointers, which is what the custom type
	// func produces for Null and Absent.
	tags := []struct {
		name string
		fn   validator.Func
	}{
		{TagNotNull, notNull},
		{TagDefined, defined},
		{TagRequiredPresent, requiredPresent},
	}
	for _, tag := range tags {
		if err := v.RegisterValidation(tag.name, tag.fn, true); err != nil {
			return errors.Wrapf(err, "tristatevalidator: register %s", tag.name)
		}
	}
	return nil
}

// Register exposes the payload of tristate.Value[T] fields to v.
func Register[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		tv, ok := field.Interface().(tristate.Value[T])
		if !ok {
			return nil
		}
		if p, ok := tv.Get(); ok {
			return p
		}
		return (*T)(nil)
	}, tristate.Value[T]{})
}

// notNull checks if a tri-state field is not Null. Fields that are not
// tri-state fall back to the Nullable check.
func notNull(fl validator.FieldLevel) bool {
	if f, ok := stateOf(fl); ok {
		return !f.IsNull()
	}
	if !fl.Field().IsValid() || !fl.Field().CanInterface() {
		return true
	}
	if nv, ok := fl.Field().Interface().(tristate.Nullable); ok {
		return !nv.IsNil()
	}
	return true
}

func defined(fl validator.FieldLevel) bool {
	if f, ok := stateOf(fl); ok {
		return !f.IsAbsent()
	}
	return true
}

func requiredPresent(fl validator.FieldLevel) bool {
	if f, ok := stateOf(fl); ok {
		return f.IsPresent()
	}
	return fl.Field().IsValid() && !fl.Field().IsZero()
}

// stateOf finds the untransformed struct field being validated. The field
// value handed to the tag has already been through the custom type func and
// no longer carries its state.
func stateOf(fl validator.FieldLevel) (tristate.Field, bool) {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr || parent.Kind() == reflect.Interface {
		if parent.IsNil() {
			return nil, false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct || fl.StructFieldName() == "" {
		return nil, false
	}
	f := parent.FieldByName(fl.StructFieldName())
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	tf, ok := f.Interface().(tristate.Field)
	return tf, ok
}
