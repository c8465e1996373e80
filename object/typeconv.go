package object

import (
	"reflect"

	"github.com/deepnoodle-ai/protoclone/errz"
)

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

// *****************************************************************************
// Type assertion helpers
// *****************************************************************************

// AsFloat converts any Go number to a float64.
func AsFloat(v any) (float64, error) {
	if v == nil {
		return 0, errz.TypeMismatchf("expected a number (nil given)")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, errz.TypeMismatchf("expected a number (%s given)", TypeOf(v))
	}
}

// AsInt converts any Go integer to an int64.
func AsInt(v any) (int64, error) {
	if v == nil {
		return 0, errz.TypeMismatchf("expected an integer (nil given)")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), nil
	default:
		return 0, errz.TypeMismatchf("expected an integer (%s given)", TypeOf(v))
	}
}

// AsTable returns the table held by v.
func AsTable(v any) (*Table, error) {
	t, ok := v.(*Table)
	if !ok {
		return nil, errz.TypeMismatchf("expected a table (%s given)", TypeOf(v))
	}
	return t, nil
}
