package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// UserRepository persists registered users keyed by their normalized email.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// EmailClaimer reserves an email for the duration of a registration so that
// concurrent registrations for the same address do not both reach the store.
type EmailClaimer interface {
	Claim(ctx context.Context, email string) (bool, error)
	Release(ctx context.Context, email string) error
}
