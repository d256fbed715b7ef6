package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

type SQLiteUserStore struct {
	db *sql.DB
}

func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{
		db: db,
	}
}

// CreateUser inserts the credential record. Uniqueness is enforced by the
// primary key on username, so concurrent registrations of the same username
// race at the database, not here; the loser gets ErrDuplicateUser.
func (s *SQLiteUserStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password) VALUES (@username, @email, @password)",
		sql.Named("username", user.Username),
		sql.Named("email", user.Email),
		sql.Named("password", user.PasswordHash))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicateUser
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *SQLiteUserStore) GetUserByUsername(ctx context.Context, username string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT username, email, created_at FROM users WHERE username = ? LIMIT 1", username)

	profile := new(Profile)
	err := row.Scan(&profile.Username, &profile.Email, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return profile, nil
}

func (s *SQLiteUserStore) PasswordHashByUsername(ctx context.Context, username string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT password FROM users WHERE username = ? LIMIT 1", username)

	var hash string
	err := row.Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scanning password: %w", err)
	}

	return hash, true, nil
}

func (s *SQLiteUserStore) SearchUsers(ctx context.Context, q string, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT username, email, created_at FROM users WHERE username LIKE @q LIMIT @limit",
		sql.Named("q", "%"+q+"%"), sql.Named("limit", limit))
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Username, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}
