package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxMemory = 32 << 20 // 32 MB

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw   *http.Request
	input map[string]any // parsed lazily by Inputs
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded / multipart.
// JSON fields map via `json:"name"`, form fields via `json:"name"` too.
func (req *Request) Bind(v any) error {
	ct := req.ContentType()

	switch {
	case strings.Contains(ct, "application/json"):
		return req.bindJSON(v)
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return err
		}
		return bindForm(req.raw.MultipartForm.Value, v)
	default:
		if err := req.raw.ParseForm(); err != nil {
			return err
		}
		return bindForm(map[string][]string(req.raw.PostForm), v)
	}
}

func (req *Request) bindJSON(v any) error {
	body, err := req.body()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// body reads the request body and puts it back so it can be read again.
func (req *Request) body() ([]byte, error) {
	if req.raw.Body == nil {
		return nil, nil
	}
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return nil, err
	}
	req.raw.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// bindForm maps form values onto a struct using its json tags.
func bindForm(values map[string][]string, v any) error {
	b, err := json.Marshal(flatten(values))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func flatten(values map[string][]string) map[string]any {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	return m
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Inputs returns every input value: the JSON or form body merged over the
// query string. Single form values are strings, repeated ones []string.
// A body that is not a JSON object contributes nothing.
//
//	// Laravel: $request->all()
func (req *Request) Inputs() map[string]any {
	if req.input != nil {
		return req.input
	}

	in := make(map[string]any)
	switch ct := req.ContentType(); {
	case strings.Contains(ct, "application/json"):
		if body, err := req.body(); err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &in); err != nil {
				in = make(map[string]any)
			}
		}
	case strings.Contains(ct, "multipart/form-data"):
		if err := req.raw.ParseMultipartForm(maxMemory); err == nil {
			in = flatten(req.raw.MultipartForm.Value)
		}
	default:
		if err := req.raw.ParseForm(); err == nil {
			in = flatten(req.raw.PostForm)
		}
	}
	for k, v := range flatten(req.raw.URL.Query()) {
		if _, ok := in[k]; !ok {
			in[k] = v
		}
	}

	req.input = in
	return in
}

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.raw.ParseForm()
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// All returns all form and query input as a flat string map.
func (req *Request) All() map[string]string {
	_ = req.raw.ParseForm()
	out := make(map[string]string)
	for k, v := range req.raw.Form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// Has reports whether the input contains key, even with an empty value.
//
//	// Laravel: $request->has('name')
func (req *Request) Has(key string) bool {
	_, ok := req.Inputs()[key]
	return ok
}

// Filled reports whether key is present and non-empty.
//
//	// Laravel: $request->filled('name')
func (req *Request) Filled(key string) bool {
	v, ok := req.Inputs()[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// ── Route parameters ─────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// RouteAttributes returns the matched route parameters, leaving out empty
// ones and chi's catch-all "*".
//
//	// Laravel: $request->route()->parametersWithoutNulls()
func (req *Request) RouteAttributes() map[string]any {
	out := make(map[string]any)
	rctx := chi.RouteContext(req.raw.Context())
	if rctx == nil {
		return out
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		if v := rctx.URLParams.Values[i]; v != "" {
			out[key] = v
		}
	}
	return out
}

// ── Headers / meta ───────────────────────────────────────────────────────────

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// BearerToken extracts the token from Authorization: Bearer <token>.
func (req *Request) BearerToken() string {
	auth := req.raw.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.ContentType(), "application/json")
}
