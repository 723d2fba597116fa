package auth

import (
	"context"

	"github.com/mmynk/konta/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential check without changing
// the web and RPC layers.
type Authenticator interface {
	// Register creates a new user account with the given username and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Failures wrap models.ErrAuth.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
