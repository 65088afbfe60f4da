package actions

import (
	"slices"

	"github.com/google/uuid"

	"github.com/km-arc/go-actions/framework/support/str"
)

// Mode is the way an action is currently being run.
type Mode string

const (
	ModeObject     Mode = "object"
	ModeController Mode = "controller"
	ModeJob        Mode = "job"
	ModeListener   Mode = "listener"
	ModeCommand    Mode = "command"
)

// RouteRequest is the part of an HTTP request a controller-mode context
// needs. *http.Request from framework/http implements it.
type RouteRequest interface {
	// Has reports whether the request input contains key.
	Has(key string) bool
	// RouteAttributes returns the matched route parameters.
	RouteAttributes() map[string]any
}

// Context carries the attributes of one action run together with its
// running mode and, for controllers, the current request.
//
// A Context is not safe for concurrent use.
type Context struct {
	id         string
	attributes Attributes
	mode       Mode
	request    RouteRequest
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// AsController runs the action as an HTTP controller for req.
func AsController(req RouteRequest) ContextOption {
	return func(c *Context) {
		c.mode = ModeController
		c.request = req
	}
}

// RunningMode sets the running mode.
func RunningMode(mode Mode) ContextOption {
	return func(c *Context) { c.mode = mode }
}

// NewContext creates a context over attrs, which is used and mutated in
// place. A nil bag is replaced by an empty one.
func NewContext(attrs Attributes, opts ...ContextOption) *Context {
	if attrs == nil {
		attrs = Attributes{}
	}
	c := &Context{
		id:         uuid.NewString(),
		attributes: attrs,
		mode:       ModeObject,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID is a random identifier used to correlate logs and spans of one run.
func (c *Context) ID() string { return c.id }

// Mode returns the running mode.
func (c *Context) Mode() Mode { return c.mode }

// RunningAs reports whether the context runs in any of modes.
func (c *Context) RunningAs(modes ...Mode) bool {
	return slices.Contains(modes, c.mode)
}

// Attributes returns the live attribute bag.
func (c *Context) Attributes() Attributes { return c.attributes }

// Request returns the controller request, or nil.
func (c *Context) Request() RouteRequest { return c.request }

// Fill merges attrs into the attribute bag.
func (c *Context) Fill(attrs Attributes) *Context {
	for k, v := range attrs {
		c.attributes[k] = v
	}
	return c
}

// Set stores a single attribute.
func (c *Context) Set(key string, value any) { c.attributes[key] = value }

// Get returns a single attribute.
func (c *Context) Get(key string) (any, bool) { return c.attributes.Get(key) }

// AttributesForResolving returns the values method parameters are matched
// against. Controllers see their route parameters on top of the attributes.
func (c *Context) AttributesForResolving() Attributes {
	if !c.RunningAs(ModeController) || c.request == nil {
		return c.attributes
	}
	return c.attributes.Merge(c.request.RouteAttributes())
}

type foundAttribute struct {
	key   string
	value any
}

// findAttribute looks name up as is, then in snake_case.
func (c *Context) findAttribute(name string) *foundAttribute {
	attrs := c.AttributesForResolving()

	if v, ok := attrs[name]; ok {
		return &foundAttribute{key: name, value: v}
	}
	if snaked := str.Snake(name); snaked != name {
		if v, ok := attrs[snaked]; ok {
			return &foundAttribute{key: snaked, value: v}
		}
	}
	return nil
}

// updateAttributeWithResolvedInstance stores a resolved instance under key,
// unless a controller request already carries key as input.
func (c *Context) updateAttributeWithResolvedInstance(key string, instance any) (any, bool) {
	if c.RunningAs(ModeController) && c.request != nil && c.request.Has(key) {
		return nil, false
	}
	c.attributes[key] = instance
	return instance, true
}
