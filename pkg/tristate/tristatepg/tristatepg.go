// Package tristatepg converts between tristate values and jackc/pgtype values.
//
// pgtype already carries three states: Undefined, Null and Present. They map
// onto Absent, Null and Present one for one.
package tristatepg

import (
	"encoding/json"

	"github.com/jackc/pgtype"
	"github.com/pkg/errors"

	"github.com/tansive/tristate/pkg/tristate"
)

// FromStatus maps a pgtype status to a tristate state.
func FromStatus(s pgtype.Status) tristate.State {
	switch s {
	case pgtype.Present:
		return tristate.StatePresent
	case pgtype.Null:
		return tristate.StateNull
	default:
		return tristate.StateAbsent
	}
}

// ToStatus maps a tristate state to a pgtype status.
func ToStatus(s tristate.State) pgtype.Status {
	switch s {
	case tristate.StatePresent:
		return pgtype.Present
	case tristate.StateNull:
		return pgtype.Null
	default:
		return pgtype.Undefined
	}
}

// FromText converts a text column to a tri-state string.
func FromText(t pgtype.Text) tristate.Value[string] {
	return tristate.Of(FromStatus(t.Status), t.String)
}

// Text converts a tri-state string to a text parameter.
func Text(v tristate.Value[string]) pgtype.Text {
	return pgtype.Text{String: v.UnwrapOrZero(), Status: ToStatus(v.State())}
}

// FromInt8 converts a bigint column to a tri-state int64.
func FromInt8(i pgtype.Int8) tristate.Value[int64] {
	return tristate.Of(FromStatus(i.Status), i.Int)
}

// Int8 converts a tri-state int64 to a bigint parameter.
func Int8(v tristate.Value[int64]) pgtype.Int8 {
	return pgtype.Int8{Int: v.UnwrapOrZero(), Status: ToStatus(v.State())}
}

// FromBool converts a boolean column to a tri-state bool.
func FromBool(b pgtype.Bool) tristate.Value[bool] {
	return tristate.Of(FromStatus(b.Status), b.Bool)
}

// Bool converts a tri-state bool to a boolean parameter.
func Bool(v tristate.Value[bool]) pgtype.Bool {
	return pgtype.Bool{Bool: v.UnwrapOrZero(), Status: ToStatus(v.State())}
}

// FromFloat8 converts a double precision column to a tri-state float64.
func FromFloat8(f pgtype.Float8) tristate.Value[float64] {
	return tristate.Of(FromStatus(f.Status), f.Float)
}

// Float8 converts a tri-state float64 to a double precision parameter.
func Float8(v tristate.Value[float64]) pgtype.Float8 {
	return pgtype.Float8{Float: v.UnwrapOrZero(), Status: ToStatus(v.State())}
}

// FromJSONB decodes a jsonb column into T. A Present column holding the JSON
// literal null is reported as Null.
func FromJSONB[T any](j pgtype.JSONB) (tristate.Value[T], error) {
	switch j.Status {
	case pgtype.Null:
		return tristate.Null[T](), nil
	case pgtype.Present:
	default:
		return tristate.Absent[T](), nil
	}
	var v tristate.Value[T]
	if err := json.Unmarshal(j.Bytes, &v); err != nil {
		return tristate.Absent[T](), errors.Wrap(err, "tristatepg: decode jsonb")
	}
	return v, nil
}

// JSONB encodes a Present payload as jsonb. Null and Absent carry no bytes.
func JSONB[T any](v tristate.Value[T]) (pgtype.JSONB, error) {
	val, ok := v.Get()
	if !ok {
		return pgtype.JSONB{Status: ToStatus(v.State())}, nil
	}
	b, err := json.Marshal(val)
	if err != nil {
		return pgtype.JSONB{}, errors.Wrap(err, "tristatepg: encode jsonb")
	}
	return pgtype.JSONB{Bytes: b, Status: pgtype.Present}, nil
}

// Assign reads any pgtype value into a tristate value. An undefined source
// yields Absent and a NULL source yields Null; otherwise the payload is
// converted with AssignTo.
func Assign[T any](src pgtype.Value) (tristate.Value[T], error) {
	switch g := src.Get().(type) {
	case nil:
		return tristate.Null[T](), nil
	case pgtype.Status:
		if g == pgtype.Null {
			return tristate.Null[T](), nil
		}
		return tristate.Absent[T](), nil
	}
	var val T
	if err := src.AssignTo(&val); err != nil {
		return tristate.Absent[T](), errors.Wrap(err, "tristatepg: assign")
	}
	return tristate.Present(val), nil
}

// Set writes v into dst. Present calls dst.Set with the payload and Null
// calls dst.Set(nil). Absent leaves dst untouched, so a freshly declared
// pgtype value stays Undefined.
func Set[T any](dst pgtype.Value, v tristate.Value[T]) error {
	var err error
	switch v.State() {
	case tristate.StatePresent:
		err = dst.Set(v.Unwrap())
	case tristate.StateNull:
		err = dst.Set(nil)
	default:
		return nil
	}
	return errors.Wrap(err, "tristatepg: set")
}
