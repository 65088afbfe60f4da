package actions_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-actions/framework/actions"
	"github.com/km-arc/go-actions/framework/container"
)

// ── models ───────────────────────────────────────────────────────────────────

type User struct {
	ID   int
	Name string

	store map[int]*User
}

func (u *User) ResolveRouteBinding(_ context.Context, value any) (any, error) {
	id, err := strconv.Atoi(fmt.Sprint(value))
	if err != nil {
		return nil, nil
	}
	if found, ok := u.store[id]; ok {
		return found, nil
	}
	return nil, nil
}

func (u *User) RouteKeyName() string { return "id" }

// Mailer has no route binding.
type Mailer struct{ From string }

var errLookup = errors.New("users table unavailable")

// BrokenModel fails every lookup.
type BrokenModel struct{}

func (BrokenModel) ResolveRouteBinding(context.Context, any) (any, error) { return nil, errLookup }

func userKey() string { return container.TypeKeyOf[*User]() }

// ── collaborators ────────────────────────────────────────────────────────────

type fakeContainer struct {
	calls   map[string]int
	factory map[string]func() any
	err     error
}

func newFakeContainer(users ...*User) *fakeContainer {
	store := make(map[int]*User, len(users))
	for _, u := range users {
		store[u.ID] = u
	}
	return &fakeContainer{
		calls: make(map[string]int),
		factory: map[string]func() any{
			userKey():                          func() any { return &User{store: store} },
			container.TypeKeyOf[*Mailer]():     func() any { return &Mailer{From: "noreply@example.com"} },
			container.TypeKeyOf[BrokenModel](): func() any { return BrokenModel{} },
		},
	}
}

func (f *fakeContainer) Get(abstract string) (any, error) {
	f.calls[abstract]++
	if f.err != nil {
		return nil, f.err
	}
	build, ok := f.factory[abstract]
	if !ok {
		return nil, fmt.Errorf("unbound %s", abstract)
	}
	return build(), nil
}

func (f *fakeContainer) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type fakeRequest struct {
	input map[string]string
	route map[string]any
}

func (r *fakeRequest) Has(key string) bool {
	_, ok := r.input[key]
	return ok
}

func (r *fakeRequest) RouteAttributes() map[string]any { return r.route }

// ── actions ──────────────────────────────────────────────────────────────────

type ShowUser struct{}

func (a *ShowUser) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Typed[*User]("user")),
	}
}

func (a *ShowUser) Handle(user *User) *User { return user }

type Greet struct{}

func (a *Greet) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Value("name")),
	}
}

func (a *Greet) Handle(name string) string { return "Hello " + name }

type Charge struct{}

func (a *Charge) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Value("amount").WithDefault(10)),
	}
}

func (a *Charge) Handle(amount int) int { return amount }

type AssignRole struct{}

func (a *AssignRole) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(
			actions.Value("roleName"),
			actions.Typed[*User]("targetUser"),
			actions.Typed[*Mailer]("mailer"),
			actions.Value("notify").WithDefault(true),
		),
	}
}

type assignment struct {
	Role   string
	User   *User
	Mailer *Mailer
	Notify bool
}

func (a *AssignRole) Handle(role string, user *User, mailer *Mailer, notify bool) (assignment, error) {
	if role == "" {
		return assignment{}, errEmptyRole
	}
	return assignment{Role: role, User: user, Mailer: mailer, Notify: notify}, nil
}

var errEmptyRole = errors.New("role must not be empty")

type Lookup struct{}

func (a *Lookup) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Value("reference")),
		"Broken": actions.Params(actions.Typed[BrokenModel]("model")),
	}
}

func (a *Lookup) Handle(reference *string) *string { return reference }
func (a *Lookup) Broken(m BrokenModel) BrokenModel { return m }

// ShowUserValue takes the model by value.
type ShowUserValue struct{}

func (a *ShowUserValue) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Typed[User]("user")),
	}
}

func (a *ShowUserValue) Handle(user User) string { return user.Name }

// Undescribed has parameters but no signature.
type Undescribed struct{}

func (a *Undescribed) Handle(id int) int { return id }
func (a *Undescribed) Ping() string      { return "pong" }

type Mismatched struct{}

func (a *Mismatched) Signatures() map[string]actions.Signature {
	return map[string]actions.Signature{
		"Handle": actions.Params(actions.Value("a"), actions.Value("b")),
	}
}

func (a *Mismatched) Handle(a1 string) string { return a1 }

// ── helpers ──────────────────────────────────────────────────────────────────

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	return l
}

func newResolver(t *testing.T, c actions.Container, opts ...actions.ResolverOption) *actions.Resolver {
	t.Helper()
	return actions.NewResolver(c, append([]actions.ResolverOption{actions.WithLogger(quietLogger())}, opts...)...)
}
