package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/konta/internal/models"
)

// Password length bounds accepted by Register. bcrypt ignores input past
// MaxPasswordLength bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", models.ErrAuth)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, MinPasswordLength)
	ErrLongPassword       = fmt.Errorf("%w: password must be at most %d bytes", models.ErrValidation, MaxPasswordLength)
	ErrUserExists         = fmt.Errorf("%w: username already registered", models.ErrValidation)
)

// UserStorage is the account table of the ledger store.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator checks admin passwords against bcrypt hashes.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator returns an authenticator over storage.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// ValidateCredential checks the password length bounds.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	switch {
	case len(credential) < MinPasswordLength:
		return ErrWeakPassword
	case len(credential) > MaxPasswordLength:
		return ErrLongPassword
	}
	return nil
}

// Register stores a new account. Usernames are unique.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	switch _, err := a.storage.GetUserByUsername(ctx, username); {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("look up user %s: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(username, string(hash))
	if err := a.storage.CreateUser(ctx, user); err != nil {
		// A concurrent Register may win the unique index.
		return nil, fmt.Errorf("create user %s: %w", username, err)
	}
	return user, nil
}

// Authenticate returns the user when the password matches. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
