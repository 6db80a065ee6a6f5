package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/platform/logger"
	"github.com/phrazzld/spending-api/internal/service/auth"
	"github.com/phrazzld/spending-api/internal/store"
)

// UserService registers and authenticates users.
type UserService interface {
	// SignUp creates a user with a hashed password.
	// Returns store.ErrEmailExists if the email is already registered, or a
	// domain validation error for a malformed email or empty password.
	SignUp(ctx context.Context, email, password string) (*domain.User, error)

	// SignIn verifies the credentials and issues an access token.
	// Returns store.ErrUserNotFound for an unknown email and
	// ErrInvalidCredentials for a wrong password.
	SignIn(ctx context.Context, email, password string) (auth.AccessToken, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.Collection[*domain.User]
	db     *sql.DB
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. When db is non-nil, the
// uniqueness check and insert of SignUp share a transaction. tokens may be
// nil for callers that only register users; SignIn then fails.
func NewUserService(
	users store.Collection[*domain.User],
	db *sql.DB,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		db:     db,
		hasher: hasher,
		tokens: tokens,
		logger: log.With("component", "user_service"),
	}
}

// SignUp implements UserService.SignUp.
func (s *UserServiceImpl) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateCredentials(email, password); err != nil {
		log.Debug("rejected sign-up with invalid credentials", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, NewServiceError("user", "sign_up", "failed to hash password", err)
	}

	user, err := domain.NewUser(email, hashed)
	if err != nil {
		return nil, err
	}

	err = withCollection(ctx, s.db, s.users, func(ctx context.Context, users store.Collection[*domain.User]) error {
		_, err := users.FindOne(ctx, store.Filter{"email": user.Email})
		switch {
		case err == nil:
			return store.ErrEmailExists
		case !store.IsNotFoundError(err):
			return err
		}
		return users.Save(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to sign up with existing email")
			return nil, store.ErrEmailExists
		}
		log.Error("failed to save user", "error", err)
		return nil, NewServiceError("user", "sign_up", "failed to save user", err)
	}

	log.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// SignIn implements UserService.SignIn.
func (s *UserServiceImpl) SignIn(ctx context.Context, email, password string) (auth.AccessToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.FindOne(ctx, store.Filter{"email": domain.NormalizeEmail(email)})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("sign-in for unknown email")
			return auth.AccessToken{}, store.ErrUserNotFound
		}
		log.Error("failed to look up user", "error", err)
		return auth.AccessToken{}, NewServiceError("user", "sign_in", "failed to look up user", err)
	}

	if !s.hasher.Verify(user.HashedPassword, password) {
		log.Debug("sign-in with wrong password", "user_id", user.ID)
		return auth.AccessToken{}, ErrInvalidCredentials
	}

	if s.tokens == nil {
		log.Error("sign-in without a token service")
		return auth.AccessToken{}, NewServiceError("user", "sign_in", "token service not configured", nil)
	}

	token, err := s.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		return auth.AccessToken{}, NewServiceError("user", "sign_in", "failed to generate token", err)
	}

	log.Debug("user signed in", "user_id", user.ID)
	return token, nil
}
