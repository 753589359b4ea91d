// Package auth implements registration, credential checking, and the
// device session transitions. Input format validation (email shape,
// password length) is the calling layer's job; this package only enforces
// the invariants the database itself must hold.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resepbunda/internal/storage"
)

// Domain errors. The UI matches these with errors.Is to render a specific
// message; anything else is an unexpected storage failure.
var (
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrEmailNotFound    = errors.New("email not found")
	ErrInvalidPassword  = errors.New("invalid password")
)

// Service provides authentication over the shared store.
type Service struct {
	store *storage.Store
	now   func() time.Time
}

// NewService constructs an auth service. The store must already be
// initialized.
func NewService(store *storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NormalizeEmail returns the canonical identity key for an email address:
// trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. It does not log the user in; callers
// invoke Login separately. A second registration under the same
// normalized email fails with ErrEmailAlreadyUsed.
func (s *Service) Register(name, email, password string) (int64, error) {
	e := NormalizeEmail(email)

	existing, err := s.store.GetUserByEmail(e)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailAlreadyUsed
	}

	id, err := s.store.CreateUser(e, password, strings.TrimSpace(name), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("register %s: %w", e, err)
	}
	return id, nil
}

// Login verifies credentials and, on success, flips the singleton session
// to logged in. The stored password must match the supplied one exactly.
func (s *Service) Login(email, password string) error {
	e := NormalizeEmail(email)

	user, err := s.store.GetUserByEmail(e)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}
	if user.Password != password {
		return ErrInvalidPassword
	}

	return s.store.SetLoggedIn(e, s.now().UTC().Format(time.RFC3339))
}

// Logout clears the session. Logging out while already logged out is not
// an error.
func (s *Service) Logout() error {
	return s.store.ClearSession()
}

// GetSession reads the current session for cold-start restore.
func (s *Service) GetSession() (*storage.Session, error) {
	return s.store.GetSession()
}

// GetUser returns the account for a normalized email, or nil when absent.
func (s *Service) GetUser(email string) (*storage.User, error) {
	return s.store.GetUserByEmail(NormalizeEmail(email))
}

// UpdateProfile updates the mutable profile columns of one account.
func (s *Service) UpdateProfile(userID int64, p storage.ProfileUpdate) error {
	return s.store.UpdateUserProfile(userID, p)
}
