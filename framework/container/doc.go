// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the application's
// services and models. It supports transient bindings, singletons, pre-built
// instances, aliases and extension (decoration). Because Go has no runtime
// constructor reflection, auto-wiring is replaced by explicit factory
// functions.
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("Foo", func(c *container.Container) any { return &Foo{} })
//
//	// Singleton — created once, reused
//	c.Singleton("cache", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    return cache.NewRedis(cfg)
//	})
//
//	// Pre-built value, alias
//	c.Instance("config", myConfig)
//	c.Alias("config", "configuration")
//
//	// Keyed by Go type: what actions.Typed[*models.User]("user") asks for
//	container.BindType[*models.User](c, func(c *container.Container) any {
//	    return models.NewUser(container.Resolve[*models.UserStore](c, "users"))
//	})
//
// # Resolving
//
//	raw := c.Make("cache")                              // panics when unbound
//	raw, err := c.Get("cache")                          // returns ErrNotBound
//	cache := container.Resolve[*RedisCache](c, "cache") // typed
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{}, &HeavyProvider{})
//	registry.Boot()
//
// Deferred providers (IsDeferred() == true) are registered on the first
// resolution of any abstract listed by Provides().
package container
