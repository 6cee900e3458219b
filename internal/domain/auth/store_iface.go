package auth

import "context"

// StoreAPI is the user table. The Find methods return (nil, nil) when no
// row matches.
type StoreAPI interface {
	CreateUser(ctx context.Context, user User) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id int64) (User, error)
}
