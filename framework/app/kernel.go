package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-actions/framework/actions"
	"github.com/km-arc/go-actions/framework/config"
	"github.com/km-arc/go-actions/framework/container"
	"github.com/km-arc/go-actions/framework/providers"
	"github.com/km-arc/go-actions/framework/routing"
)

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly —
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates and bootstraps the application.
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", app)

	// Register framework core providers (same order as Laravel)
	registry.Register(
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LoggingServiceProvider{},
		&providers.ActionServiceProvider{},
		&providers.RoutingServiceProvider{},
	)

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves the application *logrus.Logger.
func (a *Application) Logger() *logrus.Logger {
	return container.Resolve[*logrus.Logger](a.Container, "log")
}

// Resolver resolves the *actions.Resolver that runs actions.
func (a *Application) Resolver() *actions.Resolver {
	return container.Resolve[*actions.Resolver](a.Container, "actions.resolver")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Run resolves and calls method on an action outside HTTP, the way
// Laravel's Action::run() does. Attributes are matched to parameters by
// name.
//
//	user, err := app.Run(ctx, &ShowUser{}, "Handle", actions.Attributes{"user": 42})
func (a *Application) Run(ctx context.Context, action any, method string, attrs actions.Attributes) (any, error) {
	rc := actions.NewContext(attrs)
	return a.Resolver().ResolveAndCall(ctx, rc, action, method, true)
}

// Serve boots the application (if needed) and starts the HTTP server.
// It returns when ctx is cancelled or the server fails.
func (a *Application) Serve(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	log := a.Logger()

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: a.Router()}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.WithFields(logrus.Fields{
		"app":  cfg.App.Name,
		"addr": "http://localhost" + srv.Addr,
		"env":  cfg.App.Env,
	}).Info("server starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server error")
		return err
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
