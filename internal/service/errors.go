package service

import "errors"

// Domain error taxonomy. Every lifecycle operation fails with one of these
// (possibly wrapped); handlers translate them into HTTP statuses.
var (
	// ErrNotFound means the addressed entity or a link in its ancestor
	// chain is absent.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the principal lacks the required role tier or
	// self-authorship. A missing membership is always Forbidden, never
	// NotFound, so denials do not leak which projects exist.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated means no valid principal reached the operation.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflict means the write would break a uniqueness invariant,
	// e.g. a duplicate membership or a duplicate email at registration.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means a payload field is malformed, e.g. an unknown
	// role string or an assignee who is not a project member.
	ErrInvalidInput = errors.New("invalid input")
)
