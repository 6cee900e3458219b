package db

import (
	"context"
	"errors"
	"log/slog"

	"payroll/internal/domain/auth"
	"payroll/internal/platform/config"
)

// AdminSeeder creates the administrator account when it is missing.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Seed makes sure the configured administrator can log in. Static auth mode
// keeps no user rows, so there is nothing to seed.
func Seed(ctx context.Context, admins AdminSeeder, cfg config.Config) error {
	if !cfg.RunSeed || cfg.AuthMode != config.AuthModeUsers {
		return nil
	}
	created, err := admins.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if errors.Is(err, auth.ErrAdminEmailTaken) {
		slog.WarnContext(ctx, "admin user not seeded, set ADMIN_EMAIL to a free address", "username", cfg.AdminUsername, "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	if created {
		slog.InfoContext(ctx, "seeded admin user", "username", cfg.AdminUsername)
	}
	return nil
}
