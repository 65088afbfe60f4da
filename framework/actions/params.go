package actions

import (
	"reflect"

	"github.com/km-arc/go-actions/framework/container"
)

// Param describes one formal parameter of an action method.
//
// Go reflection does not expose parameter names, so actions declare them:
//
//	func (a *ShowUser) Signatures() map[string]actions.Signature {
//	    return map[string]actions.Signature{
//	        "Handle": actions.Params(
//	            actions.Typed[*User]("user"),
//	            actions.Value("withPosts").WithDefault(false),
//	        ),
//	    }
//	}
type Param struct {
	// Name is matched against attribute keys, then against its snake_case form.
	Name string

	// Class is the container abstract built for the parameter. Empty means
	// the parameter has no class hint.
	Class string

	// Type decides whether an attribute value is already an instance of Class.
	Type reflect.Type

	Default    any
	HasDefault bool
}

// Value declares a parameter without a class hint.
func Value(name string) Param {
	return Param{Name: name}
}

// Typed declares a parameter hinted with T. The container is asked for
// container.TypeKeyOf[T]() when no attribute of type T is available.
// TypeKeyOf drops pointers, so Typed[User] and Typed[*User] share a
// binding; a value parameter receives a copy of the *User it builds.
func Typed[T any](name string) Param {
	return Param{
		Name:  name,
		Class: container.TypeKeyOf[T](),
		Type:  reflect.TypeFor[T](),
	}
}

// Bound declares a class-hinted parameter resolved under an explicit
// container abstract.
//
//	actions.Bound("mailer", "mailer", reflect.TypeFor[mail.Mailer]())
func Bound(name, class string, typ reflect.Type) Param {
	return Param{Name: name, Class: class, Type: typ}
}

// WithDefault returns a copy of p with a declared default value.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	p.HasDefault = true
	return p
}

// HasClass reports whether the parameter carries a class hint.
func (p Param) HasClass() bool { return p.Class != "" }

// IsInstance reports whether v can be passed as is for a class-hinted
// parameter.
func (p Param) IsInstance(v any) bool {
	if v == nil || p.Type == nil {
		return false
	}
	return assignable(reflect.TypeOf(v), p.Type)
}

// assignable also accepts *T for a T parameter.
func assignable(from, to reflect.Type) bool {
	if from.AssignableTo(to) {
		return true
	}
	return from.Kind() == reflect.Pointer && from.Elem().AssignableTo(to)
}

// Signature is the ordered parameter list of one method.
type Signature []Param

// Params builds a Signature.
func Params(params ...Param) Signature { return Signature(params) }

// Names returns the parameter names in declaration order.
func (s Signature) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// Describer is implemented by actions to describe the parameters of their
// methods, keyed by Go method name.
type Describer interface {
	Signatures() map[string]Signature
}

// signatureOf returns the declared parameters of method and checks them
// against its Go arity. Methods without parameters need no description.
func signatureOf(instance any, method string, fn reflect.Type) (Signature, error) {
	var (
		sig      Signature
		declared bool
	)
	if d, ok := instance.(Describer); ok {
		sig, declared = d.Signatures()[method]
	}

	switch {
	case fn.IsVariadic():
		return nil, &ArgumentCountError{Method: method, Got: len(sig), Want: fn.NumIn(), Variadic: true}
	case !declared && fn.NumIn() == 0:
		return Signature{}, nil
	case !declared:
		return nil, &SignatureMissingError{Action: container.TypeKey(instance), Method: method}
	case len(sig) != fn.NumIn():
		return nil, &ArgumentCountError{Method: method, Got: len(sig), Want: fn.NumIn()}
	}
	return sig, nil
}
