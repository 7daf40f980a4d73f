package user

import (
	"errors"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"` // persisted bcrypt hash, stripped before responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the response-safe projection of a user; the hash never leaves the store.
type Public struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) Public() Public {
	return Public{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

var ErrNotFound = errors.New("user not found")
