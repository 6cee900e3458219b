package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"payroll/internal/requestctx"
)

const (
	ModeStatic = "static"
	ModeUsers  = "users"
)

// Options selects how credentials are checked. In ModeStatic only the
// configured admin pair is accepted and no users table is consulted.
type Options struct {
	Mode          string
	AdminUsername string
	AdminPassword string
	// AdminEmail defaults to <username>@payroll.local.
	AdminEmail    string
}

type Service struct {
	store StoreAPI
	opts  Options
}

func NewService(store StoreAPI, opts Options) *Service {
	return &Service{store: store, opts: opts}
}

func (s *Service) RegistrationEnabled() bool {
	return s.opts.Mode == ModeUsers
}

// Authenticate checks a login form and returns the identity to bind to the
// session. Every mismatch yields ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (requestctx.Session, error) {
	if s.opts.Mode == ModeStatic {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.opts.AdminUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword)) == 1
		if !userOK || !passOK {
			return requestctx.Session{}, ErrInvalidCredentials
		}
		return requestctx.Session{Username: s.opts.AdminUsername, IsAdmin: true}, nil
	}

	user, err := s.store.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return requestctx.Session{}, err
	}
	if user == nil {
		return requestctx.Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return requestctx.Session{}, ErrInvalidCredentials
	}
	return requestctx.Session{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

// Register validates a sign-up and creates a non-admin user when every rule
// passes. A rejected submission is returned with its messages and a nil error.
func (s *Service) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	if !s.RegistrationEnabled() {
		return RegisterResult{}, ErrRegistrationDisabled
	}

	in := NormalizeRegistration(input)
	result := RegisterResult{Username: input.Username, Email: input.Email}

	messages, err := ValidateRegistration(ctx, in, s.store)
	if err != nil {
		return RegisterResult{}, err
	}
	if len(messages) > 0 {
		result.Errors = messages
		return result, nil
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return RegisterResult{}, err
	}
	user := User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	id, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return RegisterResult{}, err
	}
	user.ID = id
	result.User = &user

	slog.InfoContext(ctx, "user registered", "userId", id, "username", user.Username)
	return result, nil
}

// EnsureAdmin creates the administrator account if no user has that name.
// It returns ErrAdminEmailTaken when another account already owns the admin
// email.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	email := s.adminEmail(username)
	owner, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if owner != nil {
		return false, fmt.Errorf("%w: %s is registered to %q", ErrAdminEmailTaken, email, owner.Username)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := s.store.CreateUser(ctx, User{Username: username, PasswordHash: hash, Email: email, IsAdmin: true}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) adminEmail(username string) string {
	if email := strings.ToLower(strings.TrimSpace(s.opts.AdminEmail)); email != "" {
		return email
	}
	return strings.ToLower(username) + "@payroll.local"
}
