package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/middleware"
	"github.com/mmynk/konta/pkg/api"
)

var _ api.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	guard  *auth.Guard
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(guard *auth.Guard, logger *slog.Logger) *AuthService {
	return &AuthService{
		guard:  guard,
		logger: logger,
	}
}

// Login authenticates the admin and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if strings.TrimSpace(req.Msg.Username) == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	token, user, err := s.guard.Login(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.LoginResponse{
		User:      &api.User{ID: user.ID, Username: user.Username},
		Token:     token,
		ExpiresAt: time.Now().Add(s.guard.Tokens().TTL()).UTC(),
	}), nil
}

// WhoAmI returns the user of the presented session.
func (s *AuthService) WhoAmI(ctx context.Context, req *connect.Request[api.WhoAmIRequest]) (*connect.Response[api.WhoAmIResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	return connect.NewResponse(&api.WhoAmIResponse{
		User: &api.User{ID: userID, Username: middleware.GetUsername(ctx)},
	}), nil
}
