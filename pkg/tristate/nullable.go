package tristate

// Nullable defines the interface for types that can represent null/nil values.
// Types implementing this interface can distinguish between a zero value and a null value,
// which is useful for database operations and JSON serialization where null has semantic meaning.
type Nullable interface {
	// IsNil returns true if the value holds no payload.
	IsNil() bool
}

// Field is the type-erased view of a Value that record-level collaborators
// (validators, SQL builders, loggers) use without knowing the payload type.
type Field interface {
	Nullable

	// State returns the state tag of the field.
	State() State
	// IsAbsent reports whether the field should be left out of the record.
	// Record serializers call it to decide whether to emit the field at all.
	IsAbsent() bool
	IsNull() bool
	IsPresent() bool
	// Any returns the payload, or nil when the field is not Present.
	Any() any
}
