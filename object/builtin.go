package object

import (
	"fmt"
)

// Func is a callable slot value.
type Func func(args ...any) (any, error)

func (f Func) Type() Type {
	return FUNCTION
}

// Call invokes the function.
func (f Func) Call(args ...any) (any, error) {
	return f(args...)
}

// Cloneable is implemented by values that can produce an independent copy
// of themselves. Prototype objects and mixin resources implement it.
type Cloneable interface {
	CloneValue() (any, error)
}

// CloneKey is the table key that gives a table the clone capability when it
// holds a Func. The function is called with the table as its only argument.
const CloneKey = "clone"

// CloneFunc returns the clone operation of v, if it has one.
func CloneFunc(v any) (func() (any, error), bool) {
	switch v := v.(type) {
	case Cloneable:
		return v.CloneValue, true
	case *Table:
		fn, ok := v.Get(CloneKey).(Func)
		if !ok {
			return nil, false
		}
		return func() (any, error) { return fn(v) }, true
	}
	return nil, false
}

// HasCloneCapability returns true if v exposes a clone operation.
func HasCloneCapability(v any) bool {
	_, ok := CloneFunc(v)
	return ok
}

// Inspect returns a short human readable representation of a slot value.
func Inspect(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case *Table:
		return v.Inspect()
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	}
	switch TypeOf(v) {
	case FUNCTION:
		return "function"
	case THREAD:
		return "thread"
	case USERDATA:
		return fmt.Sprintf("userdata(%T)", v)
	}
	return fmt.Sprintf("%v", v)
}
