package auth

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidSession       = errors.New("invalid session")
	ErrRegistrationDisabled = errors.New("registration is disabled")
	ErrAdminEmailTaken      = errors.New("admin email belongs to another user")
)
