package object

import (
	"fmt"
	"reflect"

	"github.com/deepnoodle-ai/protoclone/errz"
)

// Invoke calls the method with the given name on target and returns its
// result. Tables dispatch to a Func stored under the method name, which
// receives the table as its first argument. Any other value is called via
// reflection: the method may return nothing, a value, an error, or a value
// and an error. Methods returning several values yield a []any.
func Invoke(target any, method string, args ...any) (result any, err error) {
	if t, ok := target.(*Table); ok {
		fn, ok := t.Get(method).(Func)
		if !ok {
			return nil, errz.TypeMismatchf("table has no function %q", method)
		}
		return fn(append([]any{t}, args...)...)
	}
	if target == nil {
		return nil, errz.TypeMismatchf("cannot call method %q on nil", method)
	}
	fn := reflect.ValueOf(target).MethodByName(method)
	if !fn.IsValid() {
		return nil, errz.TypeMismatchf("%s has no method %q", Inspect(target), method)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", method, r)
			result = nil
		}
	}()

	callArgs, err := buildCallArgs(method, fn.Type(), args)
	if err != nil {
		return nil, err
	}
	return processResults(fn.Call(callArgs))
}

func buildCallArgs(name string, fnType reflect.Type, args []any) ([]reflect.Value, error) {
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()
	if isVariadic {
		// Variadic functions need at least numIn-1 arguments
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("%s: expected at least %d argument(s), got %d", name, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", name, numIn, len(args))
	}
	callArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var paramType reflect.Type
		if isVariadic && i >= numIn-1 {
			paramType = fnType.In(numIn - 1).Elem()
		} else {
			paramType = fnType.In(i)
		}
		v, err := convertArg(arg, paramType)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		callArgs[i] = v
	}
	return callArgs, nil
}

func convertArg(arg any, paramType reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(paramType), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(paramType) {
		return v, nil
	}
	if isNumericKind(v.Kind()) && isNumericKind(paramType.Kind()) {
		return v.Convert(paramType), nil
	}
	return reflect.Value{}, errz.TypeMismatchf("cannot use %s as %s", Inspect(arg), paramType)
}

func processResults(results []reflect.Value) (any, error) {
	if n := len(results); n > 0 && results[n-1].Type().Implements(errorInterface) {
		if errVal := results[n-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
		results = results[:n-1]
	}
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0].Interface(), nil
	default:
		values := make([]any, len(results))
		for i, r := range results {
			values[i] = r.Interface()
		}
		return values, nil
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
