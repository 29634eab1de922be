package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/domain"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo, *domain.User) {
	t.Helper()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)

	hash, err := auth.HashPassword("p1", bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Email:        "a@x.com",
		PasswordHash: hash,
		FirstName:    "Ada",
		Role:         domain.RoleViewer,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return svc, repo, user
}

func TestAssignRole_PromotesUser(t *testing.T) {
	svc, repo, user := newTestUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.AssignRole(ctx, user.ID, domain.RoleAdmin))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestAssignRole_RejectsUnknownRole(t *testing.T) {
	svc, _, user := newTestUserService(t)

	err := svc.AssignRole(context.Background(), user.ID, "root")
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestAssignRole_MissingUser(t *testing.T) {
	svc, _, _ := newTestUserService(t)

	err := svc.AssignRole(context.Background(), 999, domain.RoleAdmin)
	require.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestUpdate_RehashesPassword(t *testing.T) {
	svc, repo, user := newTestUserService(t)
	ctx := context.Background()

	newPassword := "p2"
	updated, err := svc.Update(ctx, user.ID, UserUpdateInput{Password: &newPassword})
	require.NoError(t, err)
	require.NotEqual(t, "p2", updated.PasswordHash)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "p2"))
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc, _, user := newTestUserService(t)

	last := "Lovelace"
	updated, err := svc.Update(context.Background(), user.ID, UserUpdateInput{LastName: &last})
	require.NoError(t, err)
	require.Equal(t, "Lovelace", updated.LastName)
	require.Equal(t, "Ada", updated.FirstName)
	require.Equal(t, "a@x.com", updated.Email)
}

func TestDelete_MissingUserIsNotFound(t *testing.T) {
	svc, _, user := newTestUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, user.ID))

	err := svc.Delete(ctx, user.ID)
	require.Equal(t, "NOT_FOUND", errorCode(t, err))
}
