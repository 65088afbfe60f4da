package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/km-arc/go-actions/framework/actions"
)

// envelope is the JSON wrapper for every response body.
type envelope map[string]any

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// Unauthorized sends 401.
func (res *Response) Unauthorized(message ...string) {
	res.Error(http.StatusUnauthorized, first(message, "Unauthenticated."))
}

// Forbidden sends 403.
func (res *Response) Forbidden(message ...string) {
	res.Error(http.StatusForbidden, first(message, "This action is unauthorized."))
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, first(message, "Not found."))
}

// UnprocessableEntity sends 422.
func (res *Response) UnprocessableEntity(message ...string) {
	res.Error(http.StatusUnprocessableEntity, first(message, "The given data was invalid."))
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	res.Error(http.StatusInternalServerError, first(message, "Server Error."))
}

// Failure renders an error returned by an action the way Laravel's exception
// handler would: missing models are 404, unusable arguments 422, anything
// else a generic 500.
func (res *Response) Failure(err error) {
	switch {
	case errors.Is(err, actions.ErrModelNotFound):
		res.NotFound(err.Error())
	case errors.Is(err, actions.ErrMissingArgument), errors.Is(err, actions.ErrInvalidArgument):
		res.UnprocessableEntity(err.Error())
	default:
		res.ServerError()
	}
}

// Status maps an action error to the status code Failure would send.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, actions.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, actions.ErrMissingArgument), errors.Is(err, actions.ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ── Redirects ────────────────────────────────────────────────────────────────

// RedirectTo performs a 302 redirect.
func (res *Response) RedirectTo(url string) {
	res.w.Header().Set("Location", url)
	res.w.WriteHeader(http.StatusFound)
}

// RedirectBack redirects to the Referer header (or fallback URL).
func (res *Response) RedirectBack(r *http.Request, fallback string) {
	ref := r.Referer()
	if ref == "" {
		ref = fallback
	}
	res.RedirectTo(ref)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func first(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}
