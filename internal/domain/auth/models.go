package auth

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RegisterResult is either the created user or the rejected submission with
// every validation message. Passwords are never echoed back.
type RegisterResult struct {
	User     *User
	Errors   []string
	Username string
	Email    string
}

func (r RegisterResult) OK() bool {
	return r.User != nil && len(r.Errors) == 0
}
