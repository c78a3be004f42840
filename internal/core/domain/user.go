package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Role is the closed set of roles a user can hold. Comparison is exact and
// case-sensitive; there is no hierarchy between roles.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 64
	PasswordMinLength = 6
	// bcrypt ignores everything past 72 bytes.
	PasswordMaxLength = 72
)

// ParseRole converts s into a Role. Only the exact strings "Admin" and
// "Member" are accepted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: role must be either 'Admin' or 'Member'", ErrValidation)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

func (r Role) String() string { return string(r) }

// User is a credential record. It is created on registration and never
// mutated or deleted through the API.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateUsername checks the username shape rules.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: username must not contain whitespace", ErrValidation)
	}
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return fmt.Errorf("%w: username must be between %d and %d characters",
			ErrValidation, UsernameMinLength, UsernameMaxLength)
	}
	return nil
}

// ValidatePassword checks the password length rules. Passwords may contain
// whitespace but must not be blank.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, PasswordMinLength)
	}
	if len(password) > PasswordMaxLength {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, PasswordMaxLength)
	}
	return nil
}
