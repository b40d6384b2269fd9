// Package user models the admin account behind the content panel. The site
// has a single author, but the account is a real persisted row with a
// bcrypt-hashed password rather than a client-side flag.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the original panel's rule for new passwords.
const MinPasswordLength = 4

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
)

// User is the admin account.
type User struct {
	id           uuid.UUID
	username     string
	displayName  string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// New creates an admin account with a freshly hashed password. The username
// is normalized to lowercase so logins are case-insensitive.
func New(username, displayName, email, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		username:     username,
		displayName:  displayName,
		email:        email,
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Restore rebuilds a user from persisted state.
func Restore(id uuid.UUID, username, displayName, email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		displayName:  displayName,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Authenticate compares a login attempt against the stored hash.
func (u *User) Authenticate(password string) error {
	if bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// UpdateProfile replaces the display name and email shown on the site.
func (u *User) UpdateProfile(displayName, email string) {
	u.displayName = strings.TrimSpace(displayName)
	u.email = strings.TrimSpace(email)
	u.updatedAt = time.Now()
}

// ChangePassword verifies the current password before storing a new hash.
func (u *User) ChangePassword(current, updated string) error {
	if err := u.Authenticate(current); err != nil {
		return err
	}
	if len(updated) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	u.updatedAt = time.Now()
	return nil
}
