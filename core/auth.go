package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Session is what a successful login hands back to the client. The token is
// self-contained; nothing about it is persisted server-side.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// DefaultTokenTTL is used when no token lifetime is configured.
const DefaultTokenTTL = 24 * time.Hour

// dummyPasswordHash keeps login latency flat when the username does not
// exist: the presented password is still run through bcrypt against this
// throwaway hash before the credentials are rejected. It is not a real
// credential and matches no password we ever stored.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates registration and login over a UserStore, a
// PasswordHasher and a TokenCodec. It holds no mutable state and is safe for
// concurrent use.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	codec  *TokenCodec
	ttl    time.Duration
}

func NewAuthService(users UserStore, hasher PasswordHasher, codec *TokenCodec, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		codec:  codec,
		ttl:    ttl,
	}
}

// Register hashes the password and stores the credential record. A taken
// username fails with ErrDuplicateUser; the uniqueness check is atomic with
// the insert at the store.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.CreateUser(ctx, User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return err
	}
	return nil
}

// Login verifies the credentials and issues a token. An unknown username and
// a wrong password both fail with ErrInvalidCredentials, and both paths pay
// for one bcrypt comparison, so the two cases are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	hash, found, err := s.users.PasswordHashByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up credentials: %w", err)
	}
	if !found {
		s.hasher.Verify(password, dummyPasswordHash)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, hash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(username, time.Now(), s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &Session{Username: username, Token: token, ExpiresAt: expiresAt}, nil
}

// CurrentIdentity resolves a verified token subject to its profile. A token
// can outlive its account, so a missing user is an expected outcome
// (ErrUserNotFound), not a server fault.
func (s *AuthService) CurrentIdentity(ctx context.Context, username string) (*Profile, error) {
	profile, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}
