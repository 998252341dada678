// Package auth issues and verifies the JWTs that carry an editor's company
// affiliation, and provides the HTTP middleware that turns a bearer token
// into an Identity for the authorization gate.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

// Claims defines the payload encoded for authenticated editors. The company
// slug is the affiliation fact the authorization gate checks on every
// mutating call.
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	CompanySlug string `json:"company_slug"`
}

// JWTManager handles issuing and verifying HMAC signed tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager constructs a manager with the given secret and token lifetime.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates an access token for the given user and company slug.
func (m *JWTManager) GenerateToken(userID uuid.UUID, email, companySlug string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt secret must not be empty")
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email:       email,
		CompanySlug: companySlug,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies the token signature and payload integrity.
func (m *JWTManager) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// IdentityFromClaims converts verified claims into the identity consumed by
// the authorization gate.
func IdentityFromClaims(claims *Claims) (*models.Identity, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}
	return &models.Identity{
		UserID:      userID,
		Email:       claims.Email,
		CompanySlug: claims.CompanySlug,
	}, nil
}
