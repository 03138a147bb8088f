package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/service/auth"
	"github.com/phrazzld/libris-api/internal/store"
)

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserService provides registration and authentication.
type UserService interface {
	// Register creates a user with a bcrypt-hashed password.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login checks the credentials and issues a bearer access token.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Login(ctx context.Context, username, password string) (*Token, error)

	// GetByID returns the user with the given ID, or found == false.
	GetByID(ctx context.Context, id int64) (user *domain.User, found bool, err error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	db         store.TxBeginner
	logger     *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	db store.TxBeginner,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		db:         db,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// Register validates the credentials, hashes the password and stores the
// user. Returns a domain.ConflictError when the username is taken.
func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		log.Debug("rejected invalid registration", slog.String("error", err.Error()))
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		// Checked first so the common case never hits the unique constraint.
		if _, err := txStore.GetByUsername(ctx, user.Username); err == nil {
			return domain.NewConflictError("user", msgUsernameIsTaken, nil)
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return err
		}

		if err := txStore.Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrUsernameExists) {
				return domain.NewConflictError("user", msgUsernameIsTaken, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		logOutcome(log, "failed to register user", err, slog.String("username", user.Username))
		return nil, wrapOpaque("failed to register user", err)
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Login checks the credentials and issues a bearer access token.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (*Token, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	username = strings.TrimSpace(username)

	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login failed: unknown user", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login failed: wrong password", slog.Int64("user_id", user.ID))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to verify password",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	accessToken, err := s.jwtService.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue access token",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &Token{AccessToken: accessToken, TokenType: auth.TokenTypeBearer}, nil
}

// GetByID returns the user with the given ID, or found == false.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, bool, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, false, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, false, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, true, nil
}
