package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/konta/internal/models"
)

var (
	ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", models.ErrAuth)
	ErrMissingToken = fmt.Errorf("%w: authorization token required", models.ErrAuth)
)

// tokenIssuer is stamped into every session token and required on validation.
const tokenIssuer = "konta"

// JWTManager signs and checks HS256 session tokens for the admin.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims identifies the signed-in user of a session.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewJWTManager returns a manager whose tokens expire after tokenDuration.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// TTL returns how long generated tokens stay valid.
func (m *JWTManager) TTL() time.Duration {
	return m.tokenDuration
}

// Generate signs a session token for user.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	issued := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(m.tokenDuration)),
		},
	}).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token for %s: %w", user.Username, err)
	}
	return signed, nil
}

// Validate checks the signature, issuer and expiry of a session token.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
