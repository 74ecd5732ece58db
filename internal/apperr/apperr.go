// Package apperr carries the application error taxonomy shared by the
// lifecycle services and the HTTP layer. Services return a *Error tagged with
// a Kind; the transport maps kinds to status codes and never leaks internals.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error / Classifie une erreur applicative
type Kind int

const (
	// Unauthenticated: missing, invalid or expired token
	Unauthenticated Kind = iota
	// Forbidden: authenticated but the authorization check denied
	Forbidden
	// Validation: missing required field, malformed input, or an invalid
	// state-transition attempt (e.g. verifying an already-verified product)
	Validation
	// NotFound: a referenced id does not exist
	NotFound
	// Conflict: unique-constraint violation such as a duplicate email
	Conflict
	// Internal: unexpected failure, details logged but not exposed
	Internal
)

// String returns the machine-stable kind label / Retourne le libellé stable du kind
func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a tagged application error / Erreur applicative étiquetée
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the cause for errors.Is chains / Expose la cause pour les chaînes errors.Is
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a tagged error / Construit une erreur étiquetée
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a tagged error with formatting / Construit une erreur étiquetée avec formatage
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error while keeping it unwrappable.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from any error; non-tagged errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether the error carries the given kind / Indique si l'erreur porte le kind donné
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
