package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrEmptyEmail   = errors.New("email cannot be empty")
	ErrEmailTooLong = errors.New("email must be at most 255 characters long")
)

// emailRegex is intentionally permissive: one non-space local part, an @,
// and a dotted domain. Stricter RFC 5322 parsing rejects addresses that
// real mail systems accept.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User represents a registered account. Accounts carry no credential;
// identity is the email itself and login issues a signed token for it.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewUser creates a new active User with the given email.
// The email is normalized (lowercased and trimmed) before validation,
// so lookups and task ownership comparisons are case-insensitive.
// Returns an error if validation fails.
func NewUser(email string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email address. All emails are
// stored normalized; comparing two normalized emails is a plain string
// equality check.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that an email address is present, well formed,
// and within the stored length limit.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if len(email) > 255 {
		return ErrEmailTooLong
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	return ValidateEmail(u.Email)
}

// Touch refreshes the UpdatedAt timestamp.
func (u *User) Touch() {
	now := time.Now().UTC()
	u.UpdatedAt = &now
}
