package auth

import (
	"errors"
	"fmt"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token has been revoked")
)

// TokenService issues and verifies HS256 access tokens. Logged out token
// ids are kept in the revocation cache until the token would have expired.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	revoked   common.CacheInterface
	now       func() time.Time
}

func NewTokenService(secretKey []byte, ttl time.Duration, revoked common.CacheInterface) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
		revoked:   revoked,
		now:       time.Now,
	}
}

// Issue signs a token for user and returns it with its expiry.
func (s *TokenService) Issue(user *gormModels.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := &JWTClaims{
		EmailValue: user.Email,
		RoleValue:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, expiry and revocation.
func (s *TokenService) Parse(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if _, found := s.revoked.Get(revokedKey(claims.ID)); found {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke denies further use of the token until its natural expiry.
func (s *TokenService) Revoke(claims *JWTClaims) {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	s.revoked.Set(revokedKey(claims.ID), true, ttl)
}

func revokedKey(tokenID string) string {
	return string(constants.CachePrefixRevokedToken) + tokenID
}
