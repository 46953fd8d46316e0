package repository

import (
	"context"
	"errors"
	"fmt"

	"userbase-go-server/domain/entity"
	domainErrors "userbase-go-server/domain/errors"
	domainRepo "userbase-go-server/domain/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements domain/repository.UserRepository over GORM.
// The *gorm.DB handle is constructed once at startup and shared by every
// in-flight request; it carries no per-request state.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository wires the shared database handle into the gateway.
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

// GetByClerkID looks up exactly one row by the identity provider's subject id.
func (r *userRepository) GetByClerkID(ctx context.Context, clerkID string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Create inserts one row. The database fills id and the timestamps; the
// returned pointer is the same struct with those fields populated.
func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// Update applies the non-nil fields of update to the row matching clerkID and
// returns the post-update row via RETURNING, keeping the call a single round
// trip. An empty update degenerates to a plain fetch.
func (r *userRepository) Update(ctx context.Context, clerkID string, update entity.UserUpdate) (*entity.User, error) {
	fields := update.Fields()
	if len(fields) == 0 {
		return r.GetByClerkID(ctx, clerkID)
	}

	var user entity.User
	result := r.db.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{}).
		Where("clerk_id = ?", clerkID).
		Updates(fields)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}

	// RowsAffected == 0 means no row matched: update is not upsert.
	if result.RowsAffected == 0 {
		return nil, domainErrors.ErrUserNotFound
	}

	return &user, nil
}

// Delete removes the row matching clerkID and returns the affected-row count,
// so a no-op delete (0) is distinguishable from an effective one (1).
func (r *userRepository) Delete(ctx context.Context, clerkID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).Delete(&entity.User{})
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

// List returns all rows. The slice is allocated up front so an empty table
// serializes as a JSON array, not null.
func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	users := make([]entity.User, 0)
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// translateError maps driver-level failures onto the domain sentinels.
// Unrecognised errors (connectivity loss, syntax, timeouts) are wrapped and
// passed through as the transport-failure kind.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domainErrors.ErrUserAlreadyExists
		case pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			return domainErrors.ErrInvalidUserRecord
		}
	}

	return fmt.Errorf("unexpected database error: %w", err)
}
