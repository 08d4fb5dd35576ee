package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs and revokes access tokens.
type TokenIssuer interface {
	Issue(user *gormModels.User) (string, time.Time, error)
	Revoke(claims *auth.JWTClaims)
}

type UserService struct {
	users  UserRepository
	tokens TokenIssuer
}

func NewUserService(users UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError(constants.MsgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError(constants.MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, NewForbiddenError(constants.MsgUserInactive)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, NewInternalError("failed to issue token", err)
	}

	logging.Info("[Users] Login succeeded", "user_id", user.ID)
	return &dtos.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      ToUserSummary(user),
	}, nil
}

func (s *UserService) Logout(claims *auth.JWTClaims) {
	s.tokens.Revoke(claims)
}

func (s *UserService) List(ctx context.Context) ([]dtos.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list users", err)
	}
	out := make([]dtos.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, ToUserSummary(&users[i]))
	}
	return out, nil
}

// Get returns a user. Non-admin callers may only read themselves.
func (s *UserService) Get(ctx context.Context, actor auth.UserClaims, id string) (*dtos.UserSummary, error) {
	if !actor.IsAdmin() && actor.UserID() != id {
		return nil, NewForbiddenError(constants.MsgForbidden)
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := ToUserSummary(user)
	return &summary, nil
}

// Create adds a user. Used by admins through the API and by the
// create_admin command.
func (s *UserService) Create(ctx context.Context, req dtos.CreateUserRequest) (*dtos.UserSummary, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	role := constants.RoleUser
	if req.Role != "" {
		role = constants.UserRole(req.Role)
	}

	user := &gormModels.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewConflictError(constants.MsgEmailTaken)
		}
		return nil, NewInternalError("failed to create user", err)
	}

	logging.Info("[Users] Created user", "user_id", user.ID, "role", user.Role)
	summary := ToUserSummary(user)
	return &summary, nil
}

// Update edits a user. Users may change their own name and password; role
// and activation changes need an admin.
func (s *UserService) Update(ctx context.Context, actor auth.UserClaims, id string, req dtos.UpdateUserRequest) (*dtos.UserSummary, error) {
	if !actor.IsAdmin() {
		if actor.UserID() != id {
			return nil, NewForbiddenError(constants.MsgForbidden)
		}
		if req.Role != nil || req.IsActive != nil {
			return nil, NewForbiddenError(constants.MsgRoleChangeAdminOnly)
		}
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = constants.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, NewInternalError("failed to update user", err)
	}
	summary := ToUserSummary(user)
	return &summary, nil
}

func (s *UserService) Delete(ctx context.Context, actor auth.UserClaims, id string) error {
	if actor.UserID() == id {
		return NewConflictError(constants.MsgCannotDeleteSelf)
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete user", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgUserNotFound)
	}
	return nil
}

// EnsureAdmin creates an admin with the given credentials, or promotes and
// reactivates an existing user with that email and resets its password.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name, password string) (*dtos.UserSummary, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, NewInternalError("failed to load user", err)
	}
	if existing == nil {
		created, err := s.Create(ctx, dtos.CreateUserRequest{
			Email:    email,
			Name:     name,
			Password: password,
			Role:     string(constants.RoleAdmin),
		})
		return created, true, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, NewInternalError("failed to hash password", err)
	}
	existing.Role = constants.RoleAdmin
	existing.IsActive = true
	existing.PasswordHash = hash
	if name != "" {
		existing.Name = name
	}
	if err := s.users.Update(ctx, existing); err != nil {
		return nil, false, NewInternalError("failed to promote user", err)
	}
	summary := ToUserSummary(existing)
	return &summary, false, nil
}

func (s *UserService) load(ctx context.Context, id string) (*gormModels.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError(constants.MsgUserNotFound)
	}
	return user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ToUserSummary(user *gormModels.User) dtos.UserSummary {
	return dtos.UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}
}
