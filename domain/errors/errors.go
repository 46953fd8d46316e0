package errors

import "errors"

// Sentinel errors for the user domain. The HTTP layer collapses all of them
// to a generic 500, but keeping the kinds distinct makes the data layer
// testable and lets the webhook tell "already synced" apart from a real
// failure. Match with errors.Is.

// ErrUserNotFound is returned when an operation keyed by clerkId matches
// zero rows.
var ErrUserNotFound = errors.New("user not found in database")

// ErrUserAlreadyExists is returned when an insert hits the unique index on
// clerk_id. The existing row is left untouched.
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrInvalidUserRecord is returned when the database rejects a row for
// violating a not-null or check constraint. This layer does not pre-validate,
// so the constraint error is the first and only signal.
var ErrInvalidUserRecord = errors.New("user record violates table constraints")
