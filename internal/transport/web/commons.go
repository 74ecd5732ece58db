package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Melvins45/maferme237/internal/app"
	"github.com/Melvins45/maferme237/internal/apperr"
	"github.com/Melvins45/maferme237/internal/authz"
)

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
// It takes the application's dependency injection container as a parameter,
// making it available to all HTTP handlers attached to this Handler.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// ErrorResponse is a helper function for sending standardized JSON error responses.
// It sets the "Content-Type" header to "application/json", writes the specified HTTP status code,
// and sends a JSON body with an "error" key containing the provided message.
func ErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// jsonResponse is a helper function for sending standardized JSON responses.
// It sets the "Content-Type" header to "application/json" and encodes the provided
// data structure into a JSON response body.
func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// jsonResponseStatus sends a JSON body with an explicit status code (e.g. 201).
func jsonResponseStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// statusFromKind maps the application error taxonomy to HTTP status codes.
// Authentication failures map before authorization ones so a caller without a
// token always sees 401, even when the record it targets does not exist.
func statusFromKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// serviceError translates a service error into a JSON error response.
// Internal errors are logged with their cause but only a generic message
// leaves the process.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFromKind(kind)

	if status == http.StatusInternalServerError {
		slog.Error("internal error",
			"request_id", GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		ErrorResponse(w, "internal server error", status)
		return
	}

	ErrorResponse(w, err.Error(), status)
}

// claimsFrom extracts the decoded token claims stored by the Auth middleware.
// Routes without authentication yield zero-value claims, which the services
// treat as an anonymous caller.
func claimsFrom(r *http.Request) authz.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(authz.Claims); ok {
		return claims
	}
	return authz.Claims{}
}

// pathID parses the {id} path value as int64 / Analyse la valeur de chemin {id} en int64
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

// decodeJSON decodes a JSON request body into dst. Returns false and writes
// a 400 when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrorResponse(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// limitRequestBody wraps a request body with MaxBytesReader to limit its size.
// This prevents DoS attacks via large request bodies. Returns true if the body
// is within the limit, false if it exceeds it (and writes an error response).
//
// Parameters:
//   - w: http.ResponseWriter for error responses
//   - r: *http.Request to limit
//   - maxBytes: Maximum allowed body size in bytes (e.g., 1MB = 1024*1024)
//
// Returns:
//   - bool: true if body is within limit, false if exceeded (caller should return)
//
// Example usage:
//
//	func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
//	    if !limitRequestBody(w, r, 1*1024*1024) { // 1MB limit
//	        return // Error already written
//	    }
//	    // Continue with normal processing
//	}
func limitRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return true
}
