package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type AuthFixture struct {
	*BaseFixture
	userStore UserStore
	codec     *TokenCodec
	auth      *AuthService
}

func NewAuthFixture(t *testing.T) *AuthFixture {
	base := NewBaseFixture(t)
	userStore := NewSQLiteUserStore(base.db)
	codec := NewTokenCodec(tokenSecret)
	auth := NewAuthService(userStore, testHasher(), codec, time.Hour)

	return &AuthFixture{
		BaseFixture: base,
		userStore:   userStore,
		codec:       codec,
		auth:        auth,
	}
}

func TestRegister(t *testing.T) {
	t.Run("register then login", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		err := f.auth.Register(f.ctx, "alice", "alice@example.com", "password123")
		require.Nil(t, err)

		session, err := f.auth.Login(f.ctx, "alice", "password123")
		require.Nil(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "alice", session.Username)
		require.NotEmpty(t, session.Token)
		assert.Greater(t, session.ExpiresAt, time.Now())

		subject, err := f.codec.Verify(session.Token, time.Now())
		require.Nil(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		require.Nil(t, f.auth.Register(f.ctx, "alice", "", "password123"))
		err := f.auth.Register(f.ctx, "alice", "", "different456")
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("empty password", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		err := f.auth.Register(f.ctx, "alice", "", "")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestLogin(t *testing.T) {
	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		seedUsers(f.ctx, t, f.userStore, testHasher(),
			struct{ Username, Password string }{"alice", "password123"})

		session, wrongPassErr := f.auth.Login(f.ctx, "alice", "wrongpassword")
		require.Nil(t, session)
		assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)

		session, unknownUserErr := f.auth.Login(f.ctx, "ghost", "password123")
		require.Nil(t, session)
		assert.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)

		assert.Equal(t, wrongPassErr, unknownUserErr)
	})
}

func TestCurrentIdentity(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		require.Nil(t, f.auth.Register(f.ctx, "alice", "alice@example.com", "password123"))

		profile, err := f.auth.CurrentIdentity(f.ctx, "alice")
		require.Nil(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "alice", profile.Username)
		assert.Nil(t, profile.Password)
	})

	t.Run("account deleted after token issuance", func(t *testing.T) {
		f := NewAuthFixture(t)
		defer f.tearDown()

		// a valid token whose account is gone is an expected outcome, not a
		// server fault
		profile, err := f.auth.CurrentIdentity(f.ctx, "ghost")
		require.Nil(t, profile)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
