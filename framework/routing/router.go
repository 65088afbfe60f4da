package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-actions/framework/actions"
	gohttp "github.com/km-arc/go-actions/framework/http"
)

// Router wraps chi.Router with Laravel-style helpers and mounts actions as
// controllers.
type Router struct {
	mux      chi.Router
	resolver *actions.Resolver
	save     bool
	log      logrus.FieldLogger
}

// Option configures a Router.
type Option func(*Router)

// WithResolver sets the resolver used by Action routes.
func WithResolver(r *actions.Resolver) Option {
	return func(rt *Router) { rt.resolver = r }
}

// WithLogger sets the logger used to report failed actions.
func WithLogger(l logrus.FieldLogger) Option {
	return func(rt *Router) { rt.log = l }
}

// SaveResolved controls whether route-bound records are written back into
// the action attributes. Defaults to true.
func SaveResolved(save bool) Option {
	return func(rt *Router) { rt.save = save }
}

// New creates a Router with sane defaults (Logger, Recoverer, RealIP).
func New(opts ...Option) *Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	rt := &Router{mux: r, save: true, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// sub wraps a chi sub-router, keeping the action settings.
func (r *Router) sub(mx chi.Router) *Router {
	return &Router{mux: mx, resolver: r.resolver, save: r.save, log: r.log}
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)    { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc)   { r.mux.Post(pattern, h) }
func (r *Router) Put(pattern string, h http.HandlerFunc)    { r.mux.Put(pattern, h) }
func (r *Router) Patch(pattern string, h http.HandlerFunc)  { r.mux.Patch(pattern, h) }
func (r *Router) Delete(pattern string, h http.HandlerFunc) { r.mux.Delete(pattern, h) }

// Any registers a handler for all common HTTP methods.
func (r *Router) Any(pattern string, h http.HandlerFunc) {
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"} {
		r.mux.Method(m, pattern, h)
	}
}

// ── Actions ──────────────────────────────────────────────────────────────────

// Action mounts an action as a controller — Laravel: Route::get('/users/{user}', ShowUser::class).
//
// Each request gets a fresh action from factory, run in controller mode with
// the request input as attributes and the route parameters on top. The
// action's AsController method is called when it has one, Handle otherwise.
//
//	r.Action(http.MethodGet, "/users/{user}", func() any { return &ShowUser{} })
func (r *Router) Action(method, pattern string, factory func() any) {
	r.mux.Method(method, pattern, r.actionHandler(factory))
}

// ControllerMethod returns the method an action is called through when it
// runs as a controller.
func ControllerMethod(action any) string {
	if actions.HasMethod(action, "AsController") {
		return "AsController"
	}
	return "Handle"
}

func (r *Router) actionHandler(factory func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		request := gohttp.NewRequest(req)
		res := gohttp.NewResponse(w)

		if r.resolver == nil {
			r.log.WithField("path", req.URL.Path).Error("action route without resolver")
			res.ServerError()
			return
		}

		action := factory()
		method := ControllerMethod(action)
		rc := actions.NewContext(actions.Attributes(request.Inputs()).Clone(), actions.AsController(request))

		out, err := r.resolver.ResolveAndCall(req.Context(), rc, action, method, r.save)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"path":       req.URL.Path,
				"method":     method,
				"context_id": rc.ID(),
				"status":     gohttp.Status(err),
			}).WithError(err).Warn("action failed")
			res.Failure(err)
			return
		}
		if out == nil {
			res.NoContent()
			return
		}
		res.Success(out)
	}
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group — Laravel: Route::group([], fn)
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(r.sub(mx))
	})
}

// Prefix creates a sub-router with a URL prefix — Laravel: Route::prefix('/api')
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(r.sub(mx))
	})
}

// ── Middleware ───────────────────────────────────────────────────────────────

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param — equivalent to $request->route('id')
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handler returns the underlying http.Handler (for testing etc.).
func (r *Router) Handler() http.Handler {
	return r.mux
}
