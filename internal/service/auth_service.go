package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/config"
	"github.com/spec-kit/document-service/internal/domain"
	"github.com/spec-kit/document-service/internal/repository"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// dummy bcrypt digest compared on unknown-email logins so the failure
// path costs the same as a real password check
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	blacklist  auth.TokenBlacklist
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, blacklist auth.TokenBlacklist) *AuthService {
	return &AuthService{
		users:      users,
		blacklist:  blacklist,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account with a hashed password. The plaintext
// never reaches the repository.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		return nil, apperrors.NewValidationError("email, password and firstName are required", nil)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleViewer
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.NewValidationError("password too long", nil)
		}
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail(input.Email)
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and issues an access token.
// Unknown email, wrong password and inactive account all surface as the
// same invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = auth.ComparePassword(dummyPasswordHash, password)
			return "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if !user.Active {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(domain.CredentialFromUser(user))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Logout revokes the token until its natural expiry. Idempotent: revoking
// an already-revoked or already-expired token still succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ttl := s.tokenMgr.TTL()
	if claims, err := s.tokenMgr.Parse(token); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	} else if errors.Is(err, auth.ErrTokenExpired) {
		// nothing left to revoke
		return nil
	}
	return s.blacklist.Revoke(ctx, token, ttl)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
