package actions

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrModelNotFound    = errors.New("model not found")
	ErrMissingArgument  = errors.New("missing argument")
	ErrMethodNotFound   = errors.New("method not found")
	ErrArgumentCount    = errors.New("incorrect number of arguments")
	ErrInvalidArgument  = errors.New("invalid argument value")
	ErrSignatureMissing = errors.New("method signature not declared")
)

// ModelNotFoundError is returned when a route binding finds no record for
// the given value.
//
//	// Laravel: throw (new ModelNotFoundException)->setModel(get_class($instance));
type ModelNotFoundError struct {
	Model string
	Value any
}

func (e *ModelNotFoundError) Error() string {
	msg := fmt.Sprintf("No query results for model [%s]", e.Model)
	if e.Value != nil {
		msg += fmt.Sprintf(" %v", e.Value)
	}
	return msg
}

func (e *ModelNotFoundError) Is(target error) bool { return target == ErrModelNotFound }

// MissingArgumentError reports a parameter with no attribute, class hint or
// default. Only a strict Resolver returns it.
type MissingArgumentError struct {
	Method string
	Param  string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("unable to resolve parameter [%s] of method %s", e.Param, e.Method)
}

func (e *MissingArgumentError) Is(target error) bool { return target == ErrMissingArgument }

// ArgumentCountError reports a signature that does not fit the Go method.
type ArgumentCountError struct {
	Method   string
	Got      int
	Want     int
	Variadic bool
}

func (e *ArgumentCountError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("%s: variadic method %s is not supported", ErrArgumentCount, e.Method)
	}
	return fmt.Sprintf("%s: found %d but expected %d: call %s", ErrArgumentCount, e.Got, e.Want, e.Method)
}

func (e *ArgumentCountError) Is(target error) bool { return target == ErrArgumentCount }

// SignatureMissingError reports a method with parameters that its action
// does not describe.
type SignatureMissingError struct {
	Action string
	Method string
}

func (e *SignatureMissingError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrSignatureMissing, e.Action, e.Method)
}

func (e *SignatureMissingError) Is(target error) bool { return target == ErrSignatureMissing }
