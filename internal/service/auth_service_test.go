package service

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/config"
	"github.com/spec-kit/document-service/internal/domain"
	"github.com/spec-kit/document-service/internal/repository"
	apperrors "github.com/spec-kit/document-service/pkg/util"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo, *auth.MemoryBlacklist) {
	repo := newFakeUserRepo()
	blacklist := auth.NewMemoryBlacklist()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "service-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}, repo, blacklist)
	return svc, repo, blacklist
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "a@x.com",
		Password:  "p1",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleViewer, user.Role)
	require.True(t, user.Active)
	require.NotEqual(t, "p1", user.PasswordHash)

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "p1", stored.PasswordHash)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "p1"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1", FirstName: "Ada"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p2", FirstName: "Bob"})
	require.Equal(t, "DUPLICATE_EMAIL", errorCode(t, err))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com"})
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestRegister_UnknownRoleRejected(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "p1", FirstName: "Ada", Role: "superuser",
	})
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestLogin_TokenCarriesCredential(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Email: "a@x.com", Password: "p1", FirstName: "Ada", Role: domain.RoleEditor,
	})
	require.NoError(t, err)

	token, exp, err := svc.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.False(t, exp.IsZero())

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, domain.RoleEditor, claims.Role)
	require.True(t, claims.Active)
}

func TestLogin_UniformInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1", FirstName: "Ada"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "a@x.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@x.com", "p1")

	// the two failure modes must be indistinguishable
	require.Equal(t, errorCode(t, wrongPassword), errorCode(t, unknownEmail))
	require.Equal(t, "INVALID_CREDENTIALS", errorCode(t, wrongPassword))
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_InactiveUserLooksLikeBadCredentials(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1", FirstName: "Ada"})
	require.NoError(t, err)

	user.Active = false
	require.NoError(t, repo.Update(ctx, user))

	_, _, err = svc.Login(ctx, "a@x.com", "p1")
	require.Equal(t, "INVALID_CREDENTIALS", errorCode(t, err))
}

func TestLogout_IdempotentAndObservable(t *testing.T) {
	svc, _, blacklist := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "p1", FirstName: "Ada"})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, token))

	revoked, err := blacklist.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestLogout_UnparseableTokenStillSucceeds(t *testing.T) {
	svc, _, blacklist := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "not.a.jwt"))

	revoked, err := blacklist.IsRevoked(ctx, "not.a.jwt")
	require.NoError(t, err)
	require.True(t, revoked)
}
