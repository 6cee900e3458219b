package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"payroll/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const userColumns = "id, username, email, password_hash, is_admin, created_at"

func (s *Store) CreateUser(ctx context.Context, user User) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash, is_admin)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, user.Username, user.Email, user.PasswordHash, user.IsAdmin).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.findUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (s *Store) GetUser(ctx context.Context, id int64) (User, error) {
	user, err := s.findUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		return User{}, ErrUserNotFound
	}
	return *user, nil
}

func (s *Store) findUser(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := s.DB.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
