// Package auth provides password credentials, session tokens and login
// throttling for the administrative account.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/konta/internal/models"
)

var ErrTooManyAttempts = fmt.Errorf("%w: too many failed attempts, try again later", models.ErrAuth)

// Guard turns credentials into session tokens and checks tokens on requests.
type Guard struct {
	authenticator Authenticator
	tokens        *JWTManager
	throttle      *Throttle
	logger        *slog.Logger
}

// NewGuard creates a guard. throttle may be nil.
func NewGuard(authenticator Authenticator, tokens *JWTManager, throttle *Throttle, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		authenticator: authenticator,
		tokens:        tokens,
		throttle:      throttle,
		logger:        logger,
	}
}

// Tokens returns the token manager used for sessions.
func (g *Guard) Tokens() *JWTManager {
	return g.tokens
}

// Login checks the credentials and returns a signed session token.
func (g *Guard) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if !g.throttle.Allowed(username) {
		g.logger.WarnContext(ctx, "Login throttled", "username", username)
		return "", nil, ErrTooManyAttempts
	}

	user, err := g.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		g.throttle.Fail(username)
		g.logger.WarnContext(ctx, "Login failed", "username", username, "error", err)
		return "", nil, err
	}
	g.throttle.Reset(username)

	token, err := g.tokens.Generate(user)
	if err != nil {
		g.logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	g.logger.InfoContext(ctx, "User logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

// Verify validates a session token.
func (g *Guard) Verify(token string) (*Claims, error) {
	return g.tokens.Validate(token)
}
