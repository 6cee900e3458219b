package auth

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

const (
	MsgUsernameFormat = "Username must be at least 3 characters and alphanumeric with underscores only."
	MsgEmailFormat    = "Enter a valid email address."
	MsgPasswordWeak   = "Password must be at least 8 characters and include letters and numbers."
	MsgPasswordMatch  = "Passwords do not match."
	MsgUsernameTaken  = "Username is already taken."
	MsgEmailTaken     = "Email is already registered."

	minUsernameLength = 3
	minPasswordLength = 8
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// UserLookup is the part of the store used for uniqueness checks.
type UserLookup interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

// NormalizeRegistration trims the username and trims and lower-cases the
// email. Passwords are left untouched.
func NormalizeRegistration(in RegisterInput) RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

// ValidateRegistration runs every rule against a normalized input and returns
// all messages in rule order. A lookup failure aborts validation.
func ValidateRegistration(ctx context.Context, in RegisterInput, lookup UserLookup) ([]string, error) {
	var messages []string

	if len(in.Username) < minUsernameLength || !usernamePattern.MatchString(in.Username) {
		messages = append(messages, MsgUsernameFormat)
	}
	if !emailPattern.MatchString(in.Email) {
		messages = append(messages, MsgEmailFormat)
	}
	if !StrongPassword(in.Password) {
		messages = append(messages, MsgPasswordWeak)
	}
	if in.Password != in.ConfirmPassword {
		messages = append(messages, MsgPasswordMatch)
	}

	existing, err := lookup.FindUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		messages = append(messages, MsgUsernameTaken)
	}
	existing, err = lookup.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		messages = append(messages, MsgEmailTaken)
	}

	return messages, nil
}

// StrongPassword requires minPasswordLength characters with at least one
// letter and one digit.
func StrongPassword(password string) bool {
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
