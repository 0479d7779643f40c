package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername means the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown user and wrong password, so
	// login responses never reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Repo defines persistence operations for users.
type Repo interface {
	Create(ctx context.Context, username, passwordHash string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
}
