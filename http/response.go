package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/km-arc/go-ioc/framework/container"
)

// ── Response ─────────────────────────────────────────────────────────────────

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

// Text sends a plain body with the given content type.
func (res *Response) Text(status int, contentType, body string) {
	res.w.Header().Set("Content-Type", contentType)
	res.w.WriteHeader(status)
	_, _ = res.w.Write([]byte(body))
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

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	msg := first(message, "Not found.")
	res.JSON(http.StatusNotFound, envelope{"message": msg})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	msg := first(message, "Server Error.")
	res.JSON(http.StatusInternalServerError, envelope{"message": msg})
}

// ContainerError maps a container error to a status and sends its code
// alongside the message. Unknown errors become 500.
//
//	{"message": "...", "code": "INVALID_CLASS", "chain": ["a", "b", "a"]}
func (res *Response) ContainerError(err error) {
	var cerr *container.Error
	if !errors.As(err, &cerr) {
		res.ServerError(err.Error())
		return
	}

	body := envelope{"message": err.Error(), "code": cerr.Code.String()}
	if len(cerr.Chain) > 0 {
		body["chain"] = cerr.Chain
	}
	res.JSON(statusFor(cerr.Code), body)
}

func statusFor(code container.ErrorCode) int {
	switch code {
	case container.ErrCodeInvalidClass:
		return http.StatusNotFound
	case container.ErrCodeInvalidArgument, container.ErrCodeInvalidCallable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
