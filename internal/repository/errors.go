// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// parsing driver error strings. For example, ErrAlreadyResolved signals
// that a resolve call raced with (or repeated) an earlier one, while
// ErrUsernameExists maps the storage-level uniqueness constraint on
// users.username to a domain error.
package repository

import "errors"

// ErrNotFound is returned when a looked-up entity does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers should translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrAlreadyResolved is returned when a resolve call targets a report
// whose status is already Resolved. Resolution is a one-way transition;
// handlers should translate this into HTTP 409.
var ErrAlreadyResolved = errors.New("report already resolved")
