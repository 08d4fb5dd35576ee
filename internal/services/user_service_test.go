package services

import (
	"context"
	"testing"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *auth.TokenService, testRepos) {
	t.Helper()
	repos := newTestRepos(setupTestDB(t))
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour, common.NewCacheService(time.Minute, time.Minute))
	return NewUserService(repos.users, tokens), tokens, repos
}

func claimsFor(id string, role constants.UserRole) *auth.JWTClaims {
	return &auth.JWTClaims{
		RoleValue:        role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: id, ID: "jti-" + id},
	}
}

func TestUserService_Login(t *testing.T) {
	svc, tokens, repos := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dtos.CreateUserRequest{
		Email:    "Ops@Example.com",
		Name:     " Ops ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", created.Email)
	assert.Equal(t, "Ops", created.Name)
	assert.Equal(t, string(constants.RoleUser), created.Role)

	t.Run("success issues a parseable token", func(t *testing.T) {
		resp, err := svc.Login(ctx, dtos.LoginRequest{Email: "ops@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, created.ID, resp.User.ID)

		claims, err := tokens.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, claims.UserID())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, dtos.LoginRequest{Email: "ops@example.com", Password: "nope"})
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assert.Equal(t, constants.MsgInvalidCredentials, ClientMessage(err))
	})

	t.Run("unknown email looks the same as a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, dtos.LoginRequest{Email: "ghost@example.com", Password: "correct-horse"})
		assert.Equal(t, KindUnauthorized, KindOf(err))
		assert.Equal(t, constants.MsgInvalidCredentials, ClientMessage(err))
	})

	t.Run("inactive user is forbidden", func(t *testing.T) {
		user, err := repos.users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		user.IsActive = false
		require.NoError(t, repos.users.Update(ctx, user))

		_, err = svc.Login(ctx, dtos.LoginRequest{Email: "ops@example.com", Password: "correct-horse"})
		assert.Equal(t, KindForbidden, KindOf(err))
	})
}

func TestUserService_Logout_RevokesToken(t *testing.T) {
	svc, tokens, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dtos.CreateUserRequest{Email: "a@example.com", Name: "A", Password: "password1"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, dtos.LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	svc.Logout(claims)

	_, err = tokens.Parse(resp.Token)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	req := dtos.CreateUserRequest{Email: "dup@example.com", Name: "Dup", Password: "password1"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	req.Email = "DUP@example.com"
	_, err = svc.Create(ctx, req)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestUserService_Permissions(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, dtos.CreateUserRequest{Email: "admin@example.com", Name: "Admin", Password: "password1", Role: "admin"})
	require.NoError(t, err)
	user, err := svc.Create(ctx, dtos.CreateUserRequest{Email: "user@example.com", Name: "User", Password: "password1"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, dtos.CreateUserRequest{Email: "other@example.com", Name: "Other", Password: "password1"})
	require.NoError(t, err)

	adminClaims := claimsFor(admin.ID, constants.RoleAdmin)
	userClaims := claimsFor(user.ID, constants.RoleUser)

	t.Run("users read themselves only", func(t *testing.T) {
		got, err := svc.Get(ctx, userClaims, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)

		_, err = svc.Get(ctx, userClaims, other.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		_, err = svc.Get(ctx, adminClaims, other.ID)
		assert.NoError(t, err)
	})

	t.Run("users rename themselves", func(t *testing.T) {
		got, err := svc.Update(ctx, userClaims, user.ID, dtos.UpdateUserRequest{Name: ptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("role change needs an admin", func(t *testing.T) {
		_, err := svc.Update(ctx, userClaims, user.ID, dtos.UpdateUserRequest{Role: ptr("admin")})
		assert.Equal(t, KindForbidden, KindOf(err))

		got, err := svc.Update(ctx, adminClaims, user.ID, dtos.UpdateUserRequest{Role: ptr("admin")})
		require.NoError(t, err)
		assert.Equal(t, "admin", got.Role)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		err := svc.Delete(ctx, adminClaims, admin.ID)
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, adminClaims, other.ID))
		assert.Equal(t, KindNotFound, KindOf(svc.Delete(ctx, adminClaims, other.ID)))
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	created, isNew, err := svc.EnsureAdmin(ctx, "root@example.com", "Root", "password1")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "admin", created.Role)

	existing, err := svc.Create(ctx, dtos.CreateUserRequest{Email: "ops@example.com", Name: "Ops", Password: "password1"})
	require.NoError(t, err)

	promoted, isNew, err := svc.EnsureAdmin(ctx, "ops@example.com", "", "password2")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, existing.ID, promoted.ID)
	assert.Equal(t, "admin", promoted.Role)
	assert.Equal(t, "Ops", promoted.Name)

	_, err = svc.Login(ctx, dtos.LoginRequest{Email: "ops@example.com", Password: "password2"})
	assert.NoError(t, err)
}
