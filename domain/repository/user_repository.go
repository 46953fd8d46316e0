package repository

import (
	"context"

	"userbase-go-server/domain/entity"
)

// UserRepository is the gateway to the remote users table. Every method is a
// single round trip against the hosted database; nothing here retries, and no
// two calls share a transaction.
//
// Result convention: either the record or the error is populated, never both.
// Not-found, conflict and constraint failures surface as the sentinels in
// domain/errors; anything else is a wrapped driver/transport error.
type UserRepository interface {
	// GetByClerkID returns the row whose clerk_id equals clerkID, or
	// ErrUserNotFound when no row matches.
	GetByClerkID(ctx context.Context, clerkID string) (*entity.User, error)

	// Create inserts one row and returns it with the server-generated fields
	// (id, created_at) populated. A duplicate clerk_id yields
	// ErrUserAlreadyExists and leaves the existing row unchanged.
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// Update applies the supplied subset of mutable fields to the row matching
	// clerkID and returns the post-update row. It never creates a row:
	// a missing clerkID yields ErrUserNotFound.
	Update(ctx context.Context, clerkID string, update entity.UserUpdate) (*entity.User, error)

	// Delete removes the row matching clerkID and reports how many rows were
	// actually removed, so callers can tell a no-op delete from an effective one.
	Delete(ctx context.Context, clerkID string) (int64, error)

	// List returns every row in the table. The slice is non-nil even when the
	// table is empty.
	List(ctx context.Context) ([]entity.User, error)
}
