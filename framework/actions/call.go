package actions

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// HasMethod reports whether instance has an exported method with the given
// name in its method set.
func HasMethod(instance any, method string) bool {
	return methodOf(instance, method).IsValid()
}

// Invoke calls method on instance with already resolved arguments.
//
// A nil argument becomes the zero value of the parameter type; other
// arguments must be assignable or convertible to it. A *T argument for a
// T parameter is dereferenced. Results are mapped as:
//
//	func()            → nil, nil
//	func() error      → nil, err
//	func() T          → T, nil
//	func() (T, error) → T, err
//
// An error returned by the method is passed through unchanged.
func Invoke(instance any, method string, args []any) (any, error) {
	fn := methodOf(instance, method)
	if !fn.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, method)
	}
	return invoke(fn, method, args)
}

func invoke(fn reflect.Value, method string, args []any) (any, error) {
	ft := fn.Type()
	if ft.IsVariadic() {
		return nil, &ArgumentCountError{Method: method, Got: len(args), Want: ft.NumIn(), Variadic: true}
	}
	if ft.NumIn() != len(args) {
		return nil, &ArgumentCountError{Method: method, Got: len(args), Want: ft.NumIn()}
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := valueOf(arg, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: call %s, argument %d", err, method, i)
		}
		in[i] = v
	}

	return results(fn.Call(in))
}

// valueOf adapts a resolved argument to the Go parameter type.
func valueOf(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case v.Kind() == reflect.Pointer && v.Type().Elem().AssignableTo(t):
		if v.IsNil() {
			return reflect.Zero(t), nil
		}
		return v.Elem(), nil
	case convertible(v, t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T is not %s", ErrInvalidArgument, arg, t)
}

// convertible allows numeric and same-shape conversions only; int → string
// would silently produce a rune.
func convertible(v reflect.Value, t reflect.Type) bool {
	if !v.Type().ConvertibleTo(t) {
		return false
	}
	if t.Kind() == reflect.String {
		return v.Kind() == reflect.String || (v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8)
	}
	return true
}

func results(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		last := out[len(out)-1]
		if last.Type() == errorType {
			return out[0].Interface(), asError(last)
		}
		return out[0].Interface(), nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
