package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

const defaultStoreTimeout = 5 * time.Second

// AuthService implements registration and login.
type AuthService struct {
	repo         ports.UserRepository
	hasher       ports.PasswordHasher
	tokens       ports.TokenIssuer
	claims       ports.EmailClaimer
	storeTimeout time.Duration
	now          func() time.Time
	log          zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// Option customises an AuthService.
type Option func(*AuthService)

// WithEmailClaimer reserves the email in a shared store while a registration
// is in flight.
func WithEmailClaimer(c ports.EmailClaimer) Option {
	return func(s *AuthService) { s.claims = c }
}

// WithStoreTimeout bounds every repository call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *AuthService) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger, opts ...Option) *AuthService {
	s := &AuthService{
		repo:         repo,
		hasher:       hasher,
		tokens:       tokens,
		storeTimeout: defaultStoreTimeout,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if verr := requireFields(map[string]string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      email,
		"password":   in.Password,
	}); verr != nil {
		return nil, verr
	}

	// The lookup only short-circuits the common case; the unique index in the
	// store decides races.
	if _, err := s.findByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if s.claims != nil {
		release, err := s.claim(ctx, email)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, err
	}
	created.Token = token

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if verr := requireFields(map[string]string{
		"email":    email,
		"password": password,
	}); verr != nil {
		return nil, verr
	}

	user, err := s.findByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Burn the same bcrypt work as a real comparison so response time does
		// not reveal whether the account exists.
		if _, verr := s.hasher.Verify(password, s.dummyPasswordHash()); verr != nil {
			s.log.Warn().Err(verr).Msg("dummy password comparison failed")
		}
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, oops.Code("AUTH_HASH_FAILED").With("user_id", user.ID).Wrap(err)
	}
	if !ok {
		s.log.Info().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	user.Token = token

	return user, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, oops.Code("AUTH_STORE_FAILED").With("operation", "find user by email").Wrap(err)
	}
	return user, err
}

func (s *AuthService) create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	created, err := s.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("AUTH_STORE_FAILED").With("operation", "create user").Wrap(err)
	}
	return created, nil
}

// claim reserves email for this registration. A claim held by someone else is
// reported as a conflict; a claimer outage only degrades to the store index.
func (s *AuthService) claim(ctx context.Context, email string) (func(), error) {
	noop := func() {}

	ok, err := s.claims.Claim(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("email claim failed, relying on store uniqueness")
		return noop, nil
	}
	if !ok {
		return nil, domain.ErrUserExists
	}

	return func() {
		if err := s.claims.Release(context.WithoutCancel(ctx), email); err != nil {
			s.log.Warn().Err(err).Msg("failed to release email claim")
		}
	}, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-password-for-unknown-accounts")
		if err != nil {
			s.log.Error().Err(err).Msg("failed to prepare dummy password hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// requireFields reports every empty field in a stable order.
func requireFields(fields map[string]string) error {
	var missing []string
	for _, name := range []string{"first_name", "last_name", "email", "password"} {
		v, ok := fields[name]
		if ok && v == "" {
			missing = append(missing, name+" is required")
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}
