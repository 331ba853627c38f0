package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tresmastres/or-hayeladim/internal/auth"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// UserService handles account creation and authentication.
type UserService struct {
	store   domain.Store
	tokens  *auth.TokenService
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

func NewUserService(store domain.Store, tokens *auth.TokenService, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{store: store, tokens: tokens, metrics: metrics, logger: logger}
}

// Register creates a new user account with a hashed password.
func (s *UserService) Register(ctx context.Context, emailAddr, password string, isAdmin bool) (domain.User, error) {
	const op = "user.register"

	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if emailAddr == "" {
		return domain.User{}, domain.Invalid(op, "email is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, domain.Invalid(op, err.Error())
	}

	user, err := s.store.CreateUser(ctx, domain.CreateUserParams{
		Email:        emailAddr,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// LoginResult carries the session token issued on successful authentication.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords produce the same error so the endpoint does not reveal
// which accounts exist.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	const op = "user.login"

	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		s.loginFailed(emailAddr)
		return nil, domain.Unauthorized(op, "invalid email or password")
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		s.loginFailed(emailAddr)
		return nil, domain.Unauthorized(op, "invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to issue token")
	}

	if s.metrics != nil {
		s.metrics.Logins.Inc()
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) loginFailed(emailAddr string) {
	if s.metrics != nil {
		s.metrics.LoginFailed.Inc()
	}
	s.logger.Warn("login failed", "email", emailAddr)
}
