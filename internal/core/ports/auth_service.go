package ports

import (
	"context"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by the registration flow.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
