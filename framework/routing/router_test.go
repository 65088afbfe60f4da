package routing_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-actions/framework/actions"
	"github.com/km-arc/go-actions/framework/container"
	"github.com/km-arc/go-actions/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Get(t *testing.T) {
	r := routing.New()
	r.Get("/hello", okHandler)

	rr := do(t, r, http.MethodGet, "/hello")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /hello: got %d want 200", rr.Code)
	}
}

func TestRouter_Post(t *testing.T) {
	r := routing.New()
	r.Post("/users", okHandler)

	rr := do(t, r, http.MethodPost, "/users")
	if rr.Code != http.StatusOK {
		t.Errorf("POST /users: got %d want 200", rr.Code)
	}
}

func TestRouter_Put(t *testing.T) {
	r := routing.New()
	r.Put("/users/{id}", okHandler)

	rr := do(t, r, http.MethodPut, "/users/1")
	if rr.Code != http.StatusOK {
		t.Errorf("PUT /users/1: got %d want 200", rr.Code)
	}
}

func TestRouter_Patch(t *testing.T) {
	r := routing.New()
	r.Patch("/users/{id}", okHandler)

	rr := do(t, r, http.MethodPatch, "/users/1")
	if rr.Code != http.StatusOK {
		t.Errorf("PATCH /users/1: got %d want 200", rr.Code)
	}
}

func TestRouter_Delete(t *testing.T) {
	r := routing.New()
	r.Delete("/users/{id}", okHandler)

	rr := do(t, r, http.MethodDelete, "/users/1")
	if rr.Code != http.StatusOK {
		t.Errorf("DELETE /users/1: got %d want 200", rr.Code)
	}
}

func TestRouter_Any(t *testing.T) {
	r := routing.New()
	r.Any("/ping", okHandler)

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		rr := do(t, r, method, "/ping")
		if rr.Code != http.StatusOK {
			t.Errorf("ANY %s /ping: got %d want 200", method, rr.Code)
		}
	}
}

// ── 404 for unregistered routes ──────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New()
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New()
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := routing.Param(req, "id")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(id))
	})

	rr := do(t, r, http.MethodGet, "/users/42")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
	if rr.Body.String() != "42" {
		t.Errorf("got body %q want %q", rr.Body.String(), "42")
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New()
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/users", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/api/v1/users")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/v1/users: got %d want 200", rr.Code)
	}

	// Root must 404
	rr2 := do(t, r, http.MethodGet, "/users")
	if rr2.Code != http.StatusNotFound {
		t.Errorf("GET /users: expected 404, got %d", rr2.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New()
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/protected", okHandler)
	})

	do(t, r, http.MethodGet, "/protected")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Action routes ─────────────────────────────────────────────────────────────

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	known map[string]*user
}

func (u *user) ResolveRouteBinding(_ context.Context, value any) (any, error) {
	if found, ok := u.known[fmt.Sprint(value)]; ok {
		return found, nil
	}
	return nil, nil
}

type showUser struct{}

func (a *showUser) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Typed[*user]("user")),
	}
}

func (a *showUser) Handle(u *user) *user { return u }

type greet struct{}

func (a *greet) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle":       actions.Params(actions.Value("name")),
		"AsController": actions.Params(actions.Value("greeting").WithDefault("Hello"), actions.Value("name")),
	}
}

func (a *greet) Handle(name string) string { return "handle " + name }

func (a *greet) AsController(greeting, name string) string { return greeting + " " + name }

type forget struct{}

func (a *forget) Handle() {}

func newActionRouter(t *testing.T) *routing.Router {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c := container.New()
	container.BindType[*user](c, func(*container.Container) any {
		return &user{known: map[string]*user{"42": {ID: 42, Name: "Alice"}}}
	})
	return routing.New(
		routing.WithResolver(actions.NewResolver(c, actions.WithLogger(logger))),
		routing.WithLogger(logger),
	)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestRouter_Action_RouteModelBinding(t *testing.T) {
	r := newActionRouter(t)
	r.Action(http.MethodGet, "/users/{user}", func() any { return &showUser{} })

	rr := do(t, r, http.MethodGet, "/users/42")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /users/42: got %d want 200", rr.Code)
	}
	data, ok := decode(t, rr)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data envelope")
	}
	if data["name"] != "Alice" {
		t.Errorf("data.name: got %v want Alice", data["name"])
	}
}

func TestRouter_Action_ModelNotFound(t *testing.T) {
	r := newActionRouter(t)
	r.Action(http.MethodGet, "/users/{user}", func() any { return &showUser{} })

	rr := do(t, r, http.MethodGet, "/users/7")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET /users/7: got %d want 404", rr.Code)
	}
	msg, _ := decode(t, rr)["message"].(string)
	if !strings.HasPrefix(msg, "No query results for model [") {
		t.Errorf("message: got %q", msg)
	}
}

func TestRouter_Action_PrefersAsController(t *testing.T) {
	r := newActionRouter(t)
	r.Action(http.MethodGet, "/greet/{name}", func() any { return &greet{} })

	rr := do(t, r, http.MethodGet, "/greet/Bob?greeting=Hi")
	if got := decode(t, rr)["data"]; got != "Hi Bob" {
		t.Errorf("data: got %v want %q", got, "Hi Bob")
	}

	rr = do(t, r, http.MethodGet, "/greet/Bob")
	if got := decode(t, rr)["data"]; got != "Hello Bob" {
		t.Errorf("data with default: got %v want %q", got, "Hello Bob")
	}
}

func TestRouter_Action_NoResult(t *testing.T) {
	r := newActionRouter(t)
	r.Action(http.MethodDelete, "/cache", func() any { return &forget{} })

	if rr := do(t, r, http.MethodDelete, "/cache"); rr.Code != http.StatusNoContent {
		t.Errorf("DELETE /cache: got %d want 204", rr.Code)
	}
}

func TestRouter_Action_InheritedByPrefix(t *testing.T) {
	r := newActionRouter(t)
	r.Prefix("/api", func(api *routing.Router) {
		api.Action(http.MethodGet, "/users/{user}", func() any { return &showUser{} })
	})

	if rr := do(t, r, http.MethodGet, "/api/users/42"); rr.Code != http.StatusOK {
		t.Errorf("GET /api/users/42: got %d want 200", rr.Code)
	}
}

func TestRouter_Action_WithoutResolver(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	r := routing.New(routing.WithLogger(logger))
	r.Action(http.MethodGet, "/users/{user}", func() any { return &showUser{} })

	if rr := do(t, r, http.MethodGet, "/users/42"); rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}

func TestControllerMethod(t *testing.T) {
	if got := routing.ControllerMethod(&greet{}); got != "AsController" {
		t.Errorf("greet: got %q want AsController", got)
	}
	if got := routing.ControllerMethod(&showUser{}); got != "Handle" {
		t.Errorf("showUser: got %q want Handle", got)
	}
}

// ── Handler() returns http.Handler ───────────────────────────────────────────

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New()
	r.Get("/ping", okHandler)
	var _ http.Handler = r.Handler()
}
