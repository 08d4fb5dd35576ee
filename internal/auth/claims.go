package auth

import (
	"aerocost/api/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the verified identity attached to a request.
type UserClaims interface {
	UserID() string
	Email() string
	Role() string
	TokenID() string
	IsAdmin() bool
}

// JWTClaims is the payload of an access token. The subject is the user id.
type JWTClaims struct {
	EmailValue string             `json:"email"`
	RoleValue  constants.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) UserID() string  { return c.Subject }
func (c *JWTClaims) Email() string   { return c.EmailValue }
func (c *JWTClaims) Role() string    { return c.RoleValue.String() }
func (c *JWTClaims) TokenID() string { return c.ID }
func (c *JWTClaims) IsAdmin() bool   { return c.RoleValue == constants.RoleAdmin }
