package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services; Boot runs once every provider is registered, so it
// may resolve bindings owned by other providers.
//
//	type ActionServiceProvider struct{ container.BaseProvider }
//
//	func (p *ActionServiceProvider) Register(app *container.Container) {
//	    app.Singleton("actions.resolver", func(c *container.Container) any {
//	        return actions.NewResolver(c)
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider registers.
	//
	//	// Laravel: public function provides(): array { return [Cache::class]; }
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider not yet loaded
	loaded     map[ServiceProvider]bool
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		loaded:     make(map[ServiceProvider]bool),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds providers and calls Register() on the eager ones.
// Registering the same provider twice is a no-op.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(providers ...ServiceProvider) {
	for _, provider := range providers {
		if r.registered[provider] {
			continue
		}
		r.registered[provider] = true

		if provider.IsDeferred() {
			r.registerDeferred(provider)
			continue
		}

		provider.Register(r.app)
		r.eager = append(r.eager, provider)
		if r.booted {
			provider.Boot(r.app)
		}
	}
}

// registerDeferred installs a placeholder binding for every abstract the provider
// offers. The first resolution of any of them loads the provider, then
// resolves the binding it registered.
func (r *ProviderRegistry) registerDeferred(provider ServiceProvider) {
	for _, abstract := range provider.Provides() {
		abs := abstract
		r.deferred[abs] = provider
		r.app.bindDeferred(abs, func(c *Container) any {
			r.load(provider)
			if c.isDeferred(abs) {
				panic(&BindingError{Abstract: abs, Reason: "is not registered by its deferred provider"})
			}
			return c.Make(abs)
		})
	}
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	if r.loaded[provider] {
		return
	}
	r.loaded[provider] = true
	for _, abs := range provider.Provides() {
		delete(r.deferred, abs)
	}
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot() on all eager providers. Subsequent calls are no-ops.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Deferred returns the abstracts whose providers have not been loaded yet.
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for abs := range r.deferred {
		out = append(out, abs)
	}
	return out
}
