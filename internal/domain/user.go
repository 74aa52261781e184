package domain

import (
	"context"

	"github.com/jmar008/dealaai/internal/domain/entity"
)

// UserRepository is the user persistence boundary.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// GetByUsername looks up an active user for login.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	GetByID(ctx context.Context, userID string) (*entity.User, error)

	List(ctx context.Context, offset, limit int) ([]*entity.User, error)

	Count(ctx context.Context) (int, error)

	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	UpdateLastLogin(ctx context.Context, userID string) error
}

// AuthUsecase is the authentication and account business logic.
type AuthUsecase interface {
	// Login verifies credentials and returns the user on success.
	Login(ctx context.Context, username, password string) (*entity.User, error)

	// GetUser returns the profile snapshot for userID.
	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// ChangePassword verifies oldPassword and replaces it with newPassword.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	// ListUsers pages through staff accounts.
	ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int, error)
}
