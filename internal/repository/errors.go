// Package repository implements persistence on MySQL with hand-written
// SQL. The sentinel errors defined here are shared across repositories so
// handlers can translate failure scenarios into HTTP statuses without
// inspecting error strings: ErrForbidden means the caller does not own the
// resource, ErrNotFound means the addressed row does not exist, and the
// *Exists values signal unique-key collisions on registration.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own or manage. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the addressed theatre, movie, snack or
// booking does not exist. Handlers should translate this into 404.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists signals a duplicate username at registration.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals a duplicate email address at registration.
var ErrEmailExists = errors.New("email already exists")

// ErrSnackUnavailable is returned when a food order names a snack that
// is currently off the menu.
var ErrSnackUnavailable = errors.New("snack unavailable")
