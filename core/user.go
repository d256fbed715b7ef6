package core

import (
	"context"
	"errors"
	"time"
)

// User is a credential record: a username and the salted hash of its
// password. The plaintext password never appears in this struct.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile is a user stripped of credential material, safe to return to
// clients. Password is always nil; the field exists so the wire shape keeps
// an explicit null where clients expect it.
type Profile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  *string   `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrDuplicateUser = errors.New("username already exists")

// UserStore persists credential records. Username uniqueness is the store's
// responsibility: the check and the insert must be atomic, because two
// concurrent registrations of the same username cannot be serialized by the
// service layer alone.
type UserStore interface {
	// CreateUser inserts the record, failing with ErrDuplicateUser when the
	// username is taken.
	CreateUser(ctx context.Context, user User) error

	// GetUserByUsername returns the profile, or (nil, nil) when absent.
	GetUserByUsername(ctx context.Context, username string) (*Profile, error)

	// PasswordHashByUsername returns the stored hash and whether the
	// username exists.
	PasswordHashByUsername(ctx context.Context, username string) (string, bool, error)

	// SearchUsers returns profiles whose username contains q.
	SearchUsers(ctx context.Context, q string, limit int) ([]Profile, error)
}
