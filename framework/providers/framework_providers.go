package providers

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/km-arc/go-actions/framework/actions"
	"github.com/km-arc/go-actions/framework/config"
	"github.com/km-arc/go-actions/framework/container"
	"github.com/km-arc/go-actions/framework/logging"
	"github.com/km-arc/go-actions/framework/routing"
	"github.com/km-arc/go-actions/framework/telemetry"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider registers the application logger.
//
// Bound abstracts:
//   - "log"  → *logrus.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Singleton("log", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return logging.New(cfg.Log)
	})
}

// ── ActionServiceProvider ─────────────────────────────────────────────────────

// ActionServiceProvider registers the method-dependency resolver used to run
// actions.
//
// Bound abstracts:
//   - "actions.resolver"  → *actions.Resolver
//
// Configuration read from "config":
//   - Actions.StrictParameters
//   - Actions.Tracing, Actions.TraceEndpoint (OTLP/HTTP export when set)
type ActionServiceProvider struct {
	container.BaseProvider
}

func (p *ActionServiceProvider) Register(app *container.Container) {
	app.Singleton("actions.resolver", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		log := container.Resolve[*logrus.Logger](c, "log")
		return actions.NewResolver(c,
			actions.WithLogger(log),
			actions.WithTracer(tracer(cfg, log)),
			actions.Strict(cfg.Actions.StrictParameters),
		)
	})
}

func tracer(cfg *config.Config, log *logrus.Logger) trace.Tracer {
	if !cfg.Actions.Tracing {
		return noop.NewTracerProvider().Tracer("")
	}
	tp := telemetry.InstallTraceProvider(cfg.Actions.TraceEndpoint, cfg.App.Name, log)
	return tp.Tracer("github.com/km-arc/go-actions/framework/actions")
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return routing.New(
			routing.WithResolver(container.Resolve[*actions.Resolver](c, "actions.resolver")),
			routing.WithLogger(container.Resolve[*logrus.Logger](c, "log")),
			routing.SaveResolved(cfg.Actions.SaveResolved),
		)
	})
}
