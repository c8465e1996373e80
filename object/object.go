// Package object provides the value model used for prototype slots.
//
// Slot values are plain Go values. The cloning engine only needs to know the
// coarse type of a value in order to pick a per-type policy, and TypeOf
// reports that type as one of the Type constants below:
//
//	switch object.TypeOf(v) {
//	case object.TABLE:
//		// v is a *object.Table
//	case object.FUNCTION:
//		// v is callable
//	}
//
// Tables are the only container type understood by the container policies
// (shallow, delegate and deep copy).
package object

import (
	"reflect"
)

// Type of a slot value as a string.
type Type string

// Type constants
const (
	BOOLEAN  Type = "boolean"
	NUMBER   Type = "number"
	STRING   Type = "string"
	TABLE    Type = "table"
	USERDATA Type = "userdata"
	FUNCTION Type = "function"
	THREAD   Type = "thread"
	NIL      Type = "nil"
)

// Types lists every type tag a configuration may carry a policy for.
var Types = []Type{BOOLEAN, NUMBER, STRING, TABLE, USERDATA, FUNCTION, THREAD}

// IsValid returns true if t is one of the configurable type tags.
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Typed may be implemented by values that want to report their own type tag.
type Typed interface {
	Type() Type
}

// TypeOf returns the type tag of the given value.
func TypeOf(v any) Type {
	switch v := v.(type) {
	case nil:
		return NIL
	case Typed:
		return v.Type()
	case bool:
		return BOOLEAN
	case string:
		return STRING
	case *Table:
		return TABLE
	case Func:
		return FUNCTION
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return NUMBER
	}
	kind := reflect.TypeOf(v).Kind()
	switch {
	case kind == reflect.Func:
		return FUNCTION
	case kind == reflect.Chan:
		return THREAD
	case kind == reflect.Bool:
		return BOOLEAN
	case kind == reflect.String:
		return STRING
	case isNumericKind(kind):
		return NUMBER
	}
	return USERDATA
}
