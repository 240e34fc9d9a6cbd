package tristate

import (
	"database/sql"
	"database/sql/driver"

	"github.com/pkg/errors"
)

// Scan implements the sql.Scanner interface.
// A NULL column scans to Null, anything else to Present. A column read from
// a row is never Absent.
func (v *Value[T]) Scan(src any) error {
	var n sql.Null[T]
	if err := n.Scan(src); err != nil {
		return errors.Wrap(err, "tristate: scan column")
	}
	if !n.Valid {
		*v = Null[T]()
		return nil
	}
	*v = Present(n.V)
	return nil
}

// Value implements the driver.Valuer interface.
// Present yields the driver value of the payload; Null and Absent both yield
// NULL. Statement builders that must leave Absent columns untouched check
// IsAbsent before binding.
func (v Value[T]) Value() (driver.Value, error) {
	if v.state != StatePresent {
		return nil, nil
	}
	return sql.Null[T]{V: v.value, Valid: true}.Value()
}

var _ sql.Scanner = &Value[int]{}
var _ driver.Valuer = Value[int]{}
