package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	"aerocost/api/internal/services"

	"github.com/go-chi/chi/v5"
)

// LoginHandler handles POST /api/v1/users/login
func LoginHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Login successful", resp)
	}
}

// LogoutHandler handles POST /api/v1/users/logout. The presented token is
// revoked until it expires.
func LogoutHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims, ok := auth.GetUserClaims(r.Context()).(*auth.JWTClaims)
		if !ok || claims == nil {
			respondServiceError(w, r, initTime, services.NewUnauthorizedError(constants.MsgMissingToken))
			return
		}

		svc.Logout(claims)
		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}

// MeHandler handles GET /api/v1/users/me
func MeHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondServiceError(w, r, initTime, services.NewUnauthorizedError(constants.MsgMissingToken))
			return
		}

		user, err := svc.Get(r.Context(), claims, claims.UserID())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User fetched successfully", user)
	}
}

func ListUsersHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Users fetched successfully", users)
	}
}

func CreateUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateUserRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		user, err := svc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User created", user, http.StatusCreated)
	}
}

// GetUserHandler handles GET /api/v1/users/{id}. Admins read anyone, other
// users only themselves.
func GetUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondServiceError(w, r, initTime, services.NewUnauthorizedError(constants.MsgMissingToken))
			return
		}

		user, err := svc.Get(r.Context(), claims, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User fetched successfully", user)
	}
}

func UpdateUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateUserRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondServiceError(w, r, initTime, services.NewUnauthorizedError(constants.MsgMissingToken))
			return
		}

		user, err := svc.Update(r.Context(), claims, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User updated", user)
	}
}

func DeleteUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			respondServiceError(w, r, initTime, services.NewUnauthorizedError(constants.MsgMissingToken))
			return
		}

		if err := svc.Delete(r.Context(), claims, id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User deleted", dtos.DeleteResponse{ID: id, Deleted: true})
	}
}

func (h *Handlers) Login() http.HandlerFunc {
	return LoginHandler(h.deps.Services.Users)
}

func (h *Handlers) Logout() http.HandlerFunc {
	return LogoutHandler(h.deps.Services.Users)
}

func (h *Handlers) Me() http.HandlerFunc {
	return MeHandler(h.deps.Services.Users)
}

func (h *Handlers) ListUsers() http.HandlerFunc {
	return ListUsersHandler(h.deps.Services.Users)
}

func (h *Handlers) CreateUser() http.HandlerFunc {
	return CreateUserHandler(h.deps.Services.Users)
}

func (h *Handlers) GetUser() http.HandlerFunc {
	return GetUserHandler(h.deps.Services.Users)
}

func (h *Handlers) UpdateUser() http.HandlerFunc {
	return UpdateUserHandler(h.deps.Services.Users)
}

func (h *Handlers) DeleteUser() http.HandlerFunc {
	return DeleteUserHandler(h.deps.Services.Users)
}
