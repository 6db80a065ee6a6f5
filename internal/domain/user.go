package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// User represents a registered account. Users are identified by email across the
// API; the ID only addresses the stored document.
type User struct {
	ID    uuid.UUID `json:"_id"`
	Email string    `json:"email"`
	// HashedPassword is persisted with the document but never rendered by any handler.
	HashedPassword string    `json:"password_hash"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given email and an already hashed password.
// The email is normalized to lower case. Returns an error if validation fails.
func NewUser(email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidateCredentials checks a sign-up email and plaintext password before hashing.
func ValidateCredentials(email, password string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	if !ValidEmail(email) {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}
	if password == "" {
		return NewValidationError("password", "is required", ErrEmptyPassword)
	}
	if len(password) > MaxPasswordBytes {
		return NewValidationError("password", "is too long", ErrPasswordTooLong)
	}
	return nil
}

// DocumentID implements store.Document.
func (u *User) DocumentID() uuid.UUID { return u.ID }

// SetDocumentID implements store.Document.
func (u *User) SetDocumentID(id uuid.UUID) { u.ID = id }

// NormalizeEmail trims surrounding whitespace and lower-cases the address so that
// lookups and ownership comparisons are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email is a bare address such as "name@example.com".
// Display-name forms ("Name <name@example.com>") are rejected.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
