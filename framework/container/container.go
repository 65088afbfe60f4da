package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
// A deferred binding stands in for a provider that has not loaded yet; its
// factory result is returned without extenders or callbacks.
type binding struct {
	factory   Factory
	singleton bool
	deferred  bool
}

// Extender wraps an already-resolved instance with decorator logic.
type Extender func(instance any, c *Container) any

// ErrNotBound is matched by the error Get returns for an unknown abstract.
var ErrNotBound = errors.New("container: no binding registered")

// BindingError reports an abstract that could not be built.
type BindingError struct {
	Abstract string
	Reason   string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("container: [%s] %s", e.Abstract, e.Reason)
}

// Is reports unbound abstracts as ErrNotBound.
func (e *BindingError) Is(target error) bool {
	return target == ErrNotBound && e.Reason == notBoundReason
}

const notBoundReason = "has no binding registered"

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container — mirrors Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make (panics) and Get (returns an error) resolution
//   - Type-keyed bindings via BindType / SingletonType
//   - Extend (decorate / wrap resolved instances)
//   - Resolved event callbacks
type Container struct {
	mu sync.RWMutex

	// abstract → binding
	bindings map[string]*binding

	// abstract → resolved singleton instance
	instances map[string]any

	// alias → abstract (canonical key)
	aliases map[string]string

	// abstract → extender funcs
	extenders map[string][]Extender

	// resolved callbacks: []func(abstract, instance)
	afterResolving []func(string, any)
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
		extenders: make(map[string][]Extender),
	}
	// Bind the container to itself — like Laravel's $app->instance()
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind("UserRepository", func(c *container.Container) any {
//	    return &EloquentUserRepository{DB: Resolve[*sql.DB](c, "db")}
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
func (c *Container) Singleton(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", myConfig)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// bind is the internal registration helper (must hold mu.Lock).
func (c *Container) bind(abstract string, factory Factory, singleton bool) {
	key := c.canonical(abstract)
	// Drop an existing singleton so it's rebuilt with the new factory
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// bindDeferred installs a placeholder for an abstract owned by a deferred
// provider.
func (c *Container) bindDeferred(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, deferred: true}
}

// isDeferred reports whether abstract is still a deferred placeholder.
func (c *Container) isDeferred(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bindings[c.canonical(abstract)]
	return ok && b.deferred
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias("cache", "cacheManager")
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// BindType registers a transient factory keyed by TypeKey of T, the key
// actions.Typed parameters ask the container for.
//
//	container.BindType[*models.User](c, func(c *container.Container) any {
//	    return &models.User{Repo: container.Resolve[*models.UserRepo](c, "users")}
//	})
func BindType[T any](c *Container, factory Factory) {
	c.Bind(TypeKeyOf[T](), factory)
}

// SingletonType is BindType with singleton caching.
func SingletonType[T any](c *Container, factory Factory) {
	c.Singleton(TypeKeyOf[T](), factory)
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the resolved instance of an abstract.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
func (c *Container) Extend(abstract string, fn Extender) {
	c.mu.Lock()
	key := c.canonical(abstract)
	c.extenders[key] = append(c.extenders[key], fn)
	inst, resolved := c.instances[key]
	c.mu.Unlock()

	// Already resolved singletons are decorated in place
	if resolved {
		extended := fn(inst, c)
		c.mu.Lock()
		c.instances[key] = extended
		c.mu.Unlock()
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container and panics when nothing is
// bound under it. Use it at bootstrap; request-time code should call Get.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo := c.Make("UserRepository")
func (c *Container) Make(abstract string) any {
	instance, err := c.make(abstract)
	if err != nil {
		panic(err)
	}
	return instance
}

// Get resolves an abstract and reports failures as errors. Unknown abstracts
// yield a *BindingError matching ErrNotBound; an error panicked by a factory
// is returned as is.
func (c *Container) Get(abstract string) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = perr
				return
			}
			err = &BindingError{Abstract: abstract, Reason: fmt.Sprint(r)}
		}
	}()
	return c.make(abstract)
}

func (c *Container) make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, &BindingError{Abstract: abstract, Reason: notBoundReason}
	}
	if b.deferred {
		return b.factory(c), nil
	}
	return c.runFactory(key, b.factory, b.singleton), nil
}

// runFactory executes a factory, optionally caching the result.
func (c *Container) runFactory(key string, f Factory, singleton bool) any {
	instance := f(c)

	c.mu.RLock()
	exts := c.extenders[key]
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}

	if singleton {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}

	c.fireAfterResolving(key, instance)
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract holds a cached instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes all registrations for an abstract (binding + instance).
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
}

// Flush resets the entire container.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.instances = make(map[string]any)
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]Extender)
}

// Bindings returns all registered abstract keys (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias to its canonical key.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired whenever a factory runs.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Type keys ─────────────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v. Pointers are
// dereferenced, so *User and User share a key.
//
//	key := container.TypeKey(&models.User{})  // "github.com/acme/app/models.User"
func TypeKey(v any) string {
	return typeKey(reflect.TypeOf(v))
}

// TypeKeyOf is TypeKey for a type parameter; it works for interfaces too.
//
//	container.TypeKeyOf[UserRepository]()
func TypeKeyOf[T any]() string {
	return typeKey(reflect.TypeFor[T]())
}

func typeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: db := c.Make("db").(*sql.DB)
//	// Write:      db := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but returns errors instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Get(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, &BindingError{
			Abstract: abstract,
			Reason:   fmt.Sprintf("resolved to %T, not %T", instance, zero),
		}
	}
	return typed, nil
}
