package repository

import (
	"context"
	"fmt"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByMobile(ctx context.Context, mobile string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetAliasVerified flips the verified flag for the given channel.
	SetAliasVerified(ctx context.Context, id uuid.UUID, aliasType entity.AliasType) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, mobile, password,
	       email_verified, mobile_verified, is_active,
	       created_at, updated_at, deleted_at`

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, mobile, password,
		                   email_verified, mobile_verified, is_active,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.EmailVerified,
		user.MobileVerified,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	user, err := ur.scanUser(ur.db.QueryRow(ctx, query, id))
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`

	user, err := ur.scanUser(ur.db.QueryRow(ctx, query, email))
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE mobile = $1 AND deleted_at IS NULL
	`

	user, err := ur.scanUser(ur.db.QueryRow(ctx, query, mobile))
	if err != nil {
		ur.log.Error("Failed to find user by mobile",
			zap.Error(err),
			zap.String("mobile", mobile),
		)
		return nil, fmt.Errorf("find user by mobile %s: %w", mobile, err)
	}

	return user, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, mobile = $4, password = $5,
		    email_verified = $6, mobile_verified = $7, is_active = $8,
		    updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.EmailVerified,
		user.MobileVerified,
		user.IsActive,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", user.ID.String())
	}

	return nil
}

func (ur *userRepository) SetAliasVerified(ctx context.Context, id uuid.UUID, aliasType entity.AliasType) error {
	column := "email_verified"
	if aliasType == entity.AliasTypeMobile {
		column = "mobile_verified"
	}

	query := `
		UPDATE users
		SET ` + column + ` = true, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to set alias verified",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("alias_type", string(aliasType)),
		)
		return fmt.Errorf("set %s verified for user %s: %w", aliasType, id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", id.String())
	}

	return nil
}

func (ur *userRepository) SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		ur.log.Error("Failed to set password hash",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("set password hash for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found or already deleted", id.String())
	}

	return nil
}

func (ur *userRepository) scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Mobile,
		&user.PasswordHash,
		&user.EmailVerified,
		&user.MobileVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
