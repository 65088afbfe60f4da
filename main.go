package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"

	"github.com/km-arc/go-actions/framework/actions"
	"github.com/km-arc/go-actions/framework/app"
	"github.com/km-arc/go-actions/framework/container"
	gohttp "github.com/km-arc/go-actions/framework/http"
	"github.com/km-arc/go-actions/framework/routing"
)

// ── Models ───────────────────────────────────────────────────────────────────

// User is an in-memory model bound from {user} route segments.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	store *UserStore
}

func (u *User) ResolveRouteBinding(_ context.Context, value any) (any, error) {
	id, err := strconv.Atoi(fmt.Sprint(value))
	if err != nil {
		return nil, nil
	}
	return u.store.Find(id), nil
}

func (u *User) RouteKeyName() string { return "id" }

type UserStore struct {
	mu    sync.RWMutex
	users map[int]*User
}

func (s *UserStore) Find(id int) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[id]
}

func (s *UserStore) SetRole(u *User, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Role = role
}

// ── Actions ──────────────────────────────────────────────────────────────────

// ShowUser: GET /api/v1/users/{user}
type ShowUser struct{}

func (a *ShowUser) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Typed[*User]("user")),
	}
}

func (a *ShowUser) Handle(user *User) *User { return user }

// AssignRole: PUT /api/v1/users/{user}/role  {"role": "admin"}
type AssignRole struct {
	store *UserStore
}

func (a *AssignRole) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(
			actions.Typed[*User]("user"),
			actions.Value("role").WithDefault("member"),
		),
	}
}

func (a *AssignRole) Handle(user *User, role string) *User {
	a.store.SetRole(user, role)
	return user
}

func main() {
	application := app.New() // loads .env automatically

	store := &UserStore{users: map[int]*User{
		1: {ID: 1, Name: "Alice", Role: "admin"},
		2: {ID: 2, Name: "Bob", Role: "member"},
	}}
	for _, u := range store.users {
		u.store = store
	}
	application.Instance("users", store)
	container.BindType[*User](application.Container, func(c *container.Container) any {
		return &User{store: container.Resolve[*UserStore](c, "users")}
	})

	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "Welcome to Go-Actions!"})
	})

	// ── Route prefix (like Route::prefix('api')) ──────────────────────────────

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Action(http.MethodGet, "/users/{user}", func() any { return &ShowUser{} })

		api.Group(func(protected *routing.Router) {
			protected.Middleware(AuthMiddleware)
			protected.Action(http.MethodPut, "/users/{user}/role", func() any {
				return &AssignRole{store: store}
			})
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := application.Serve(ctx); err != nil {
		os.Exit(1)
	}
}

// AuthMiddleware is an example token guard.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := gohttp.NewRequest(r)
		res := gohttp.NewResponse(w)

		if req.BearerToken() == "" {
			res.Unauthorized()
			return
		}
		next.ServeHTTP(w, r)
	})
}
