package actions

import (
	"context"
	"fmt"
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/km-arc/go-actions/framework/container"
)

const tracerName = "github.com/km-arc/go-actions/framework/actions"

// Container builds class-hinted parameters. *container.Container
// implements it.
type Container interface {
	Get(abstract string) (any, error)
}

// RouteBindable is implemented by models that can look themselves up from a
// raw route value, like Eloquent's resolveRouteBinding. A nil record with a
// nil error means nothing matched.
type RouteBindable interface {
	ResolveRouteBinding(ctx context.Context, value any) (any, error)
}

// RouteKeyNamer optionally names the field a RouteBindable matches on.
type RouteKeyNamer interface {
	RouteKeyName() string
}

// Resolver supplies action method arguments from a Context.
type Resolver struct {
	container Container
	log       *logrus.Entry
	tracer    trace.Tracer
	strict    bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger; defaults to logrus.StandardLogger().
func WithLogger(l *logrus.Logger) ResolverOption {
	return func(r *Resolver) { r.log = logrus.NewEntry(l) }
}

// WithTracer sets the tracer; defaults to the global otel provider.
func WithTracer(t trace.Tracer) ResolverOption {
	return func(r *Resolver) { r.tracer = t }
}

// Strict makes unresolvable parameters an error instead of a nil argument.
func Strict(strict bool) ResolverOption {
	return func(r *Resolver) { r.strict = strict }
}

// NewResolver creates a Resolver building class-hinted parameters from c.
func NewResolver(c Container, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		container: c,
		log:       logrus.NewEntry(logrus.StandardLogger()),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithField("component", "actions")
	return r
}

// ResolveAndCall resolves the parameters of method and calls it on instance,
// returning its result. When instance has no such method it returns an
// empty argument list without calling anything.
//
// Errors from the container, from route bindings and from the method itself
// are returned unchanged.
func (r *Resolver) ResolveAndCall(ctx context.Context, rc *Context, instance any, method string, save bool) (any, error) {
	ctx, span := r.tracer.Start(ctx, "actions.ResolveAndCall", trace.WithAttributes(
		attribute.String("action.name", container.TypeKey(instance)),
		attribute.String("action.method", method),
		attribute.String("action.mode", string(rc.Mode())),
		attribute.String("action.context_id", rc.ID()),
		attribute.Bool("action.save", save),
	))
	defer span.End()

	fn := methodOf(instance, method)
	if !fn.IsValid() {
		span.SetAttributes(attribute.Bool("action.method_missing", true))
		return []any{}, nil
	}

	args, err := r.resolveParameters(ctx, rc, instance, method, fn, save)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	out, err := invoke(fn, method, args)
	if err != nil {
		recordError(span, err)
	}
	return out, err
}

// ResolveMethodDependencies returns one argument per declared parameter of
// method, in order. A missing method yields an empty list and no error.
func (r *Resolver) ResolveMethodDependencies(ctx context.Context, rc *Context, instance any, method string, save bool) ([]any, error) {
	fn := methodOf(instance, method)
	if !fn.IsValid() {
		return []any{}, nil
	}
	return r.resolveParameters(ctx, rc, instance, method, fn, save)
}

// Run is ResolveAndCall with the result asserted to T. A nil result or a
// missing method yields the zero T; a result of another type is an
// ErrInvalidArgument.
func Run[T any](ctx context.Context, r *Resolver, rc *Context, instance any, method string) (T, error) {
	var zero T
	out, err := r.ResolveAndCall(ctx, rc, instance, method, true)
	if err != nil {
		return zero, err
	}
	if typed, ok := out.(T); ok {
		return typed, nil
	}
	if out == nil || !HasMethod(instance, method) {
		return zero, nil
	}
	return zero, fmt.Errorf("%w: %s returned %T, not %s", ErrInvalidArgument, method, out, reflect.TypeFor[T]())
}

func (r *Resolver) resolveParameters(ctx context.Context, rc *Context, instance any, method string, fn reflect.Value, save bool) ([]any, error) {
	sig, err := signatureOf(instance, method, fn.Type())
	if err != nil {
		return nil, err
	}

	args := make([]any, len(sig))
	for i, p := range sig {
		if args[i], err = r.resolveDependency(ctx, rc, method, p, save); err != nil {
			return nil, err
		}
	}

	if r.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		r.log.WithFields(logrus.Fields{
			"method":     method,
			"context_id": rc.ID(),
			"params":     sig.Names(),
		}).Trace("resolved arguments\n" + spew.Sdump(args))
	}
	return args, nil
}

// resolveDependency picks, in order: a matching attribute, a container
// instance for class-hinted parameters, the declared default.
func (r *Resolver) resolveDependency(ctx context.Context, rc *Context, method string, p Param, save bool) (any, error) {
	log := r.log.WithFields(logrus.Fields{"method": method, "param": p.Name, "context_id": rc.ID()})
	attr := rc.findAttribute(p.Name)

	if attr != nil && (!p.HasClass() || p.IsInstance(attr.value)) {
		log.WithField("key", attr.key).Debug("parameter taken from attributes")
		return attr.value, nil
	}

	if p.HasClass() {
		log.WithField("class", p.Class).Debug("parameter resolved through container")
		return r.resolveContainerDependency(ctx, rc, p.Class, attr, save)
	}

	if p.HasDefault {
		return p.Default, nil
	}

	if r.strict {
		return nil, &MissingArgumentError{Method: method, Param: p.Name}
	}
	log.Debug("no value for parameter, passing nil")
	return nil, nil
}

func (r *Resolver) resolveContainerDependency(ctx context.Context, rc *Context, class string, attr *foundAttribute, save bool) (any, error) {
	instance, err := r.container.Get(class)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return instance, nil
	}

	if bindable, ok := instance.(RouteBindable); ok {
		if instance, err = r.resolveRouteBinding(ctx, bindable, attr.value); err != nil {
			return nil, err
		}
	}

	if save {
		if _, stored := rc.updateAttributeWithResolvedInstance(attr.key, instance); !stored {
			r.log.WithField("key", attr.key).Debug("request input kept, resolved instance not saved")
		}
	}
	return instance, nil
}

func (r *Resolver) resolveRouteBinding(ctx context.Context, bindable RouteBindable, value any) (any, error) {
	record, err := bindable.ResolveRouteBinding(ctx, value)
	if err != nil {
		return nil, err
	}
	if isNil(record) {
		fields := logrus.Fields{"model": container.TypeKey(bindable), "value": value}
		if namer, ok := bindable.(RouteKeyNamer); ok {
			fields["field"] = namer.RouteKeyName()
		}
		r.log.WithFields(fields).Debug("route binding found no record")
		return nil, &ModelNotFoundError{Model: container.TypeKey(bindable), Value: value}
	}
	return record, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func methodOf(instance any, method string) reflect.Value {
	if instance == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(instance).MethodByName(method)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
