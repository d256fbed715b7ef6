package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type gateFixture struct {
	codec   *TokenCodec
	handler http.Handler

	// subject recorded by the downstream handler on its last invocation
	called      bool
	subject     string
	subjectSeen bool
}

func newGateFixture(t *testing.T) *gateFixture {
	policy, err := NewRoutePolicy(
		RouteRule{Pattern: "/api/ping/**", Access: Public},
	)
	require.Nil(t, err)

	f := &gateFixture{codec: NewTokenCodec(tokenSecret)}

	r := router.New()
	r.Use(AuthGate(policy, f.codec))
	record := func(w http.ResponseWriter, req *http.Request) error {
		f.called = true
		f.subject, f.subjectSeen = OptionalSubjectFromRequest(req)
		w.WriteHeader(http.StatusOK)
		return nil
	}
	r.Get("/api/ping", record)
	r.Get("/api/me", record)
	f.handler = r
	return f
}

func (f *gateFixture) do(path, authorization string) *httptest.ResponseRecorder {
	f.called = false
	f.subject = ""
	f.subjectSeen = false

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthGatePublicRoutes(t *testing.T) {
	t.Run("no token passes through", func(t *testing.T) {
		f := newGateFixture(t)

		rec := f.do("/api/ping", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, f.called)
		assert.False(t, f.subjectSeen)
	})

	t.Run("valid token attaches the subject", func(t *testing.T) {
		f := newGateFixture(t)
		token, _, err := f.codec.Issue("alice", time.Now(), time.Hour)
		require.Nil(t, err)

		rec := f.do("/api/ping", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, f.subjectSeen)
		assert.Equal(t, "alice", f.subject)
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		f := newGateFixture(t)

		rec := f.do("/api/ping", "Bearer not-a-token")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, f.called)
		assert.False(t, f.subjectSeen)
	})
}

func TestAuthGateProtectedRoutes(t *testing.T) {
	t.Run("valid token reaches the handler", func(t *testing.T) {
		f := newGateFixture(t)
		token, _, err := f.codec.Issue("alice", time.Now(), time.Hour)
		require.Nil(t, err)

		rec := f.do("/api/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, f.subjectSeen)
		assert.Equal(t, "alice", f.subject)
	})

	t.Run("rejections are uniform 401s", func(t *testing.T) {
		f := newGateFixture(t)

		valid, _, err := f.codec.Issue("alice", time.Now(), time.Hour)
		require.Nil(t, err)
		expired, _, err := f.codec.Issue("alice", time.Now().Add(-2*time.Hour), time.Hour)
		require.Nil(t, err)
		i := len(valid) - 10
		tampered := valid[:i] + flipChar(valid[i]) + valid[i+1:]

		tcs := []struct {
			name          string
			authorization string
		}{
			{"missing header", ""},
			{"wrong scheme", "Basic " + valid},
			{"bare token without scheme", valid},
			{"malformed token", "Bearer not-a-token"},
			{"expired token", "Bearer " + expired},
			{"tampered token", "Bearer " + tampered},
		}

		for _, tc := range tcs {
			t.Run(tc.name, func(t *testing.T) {
				rec := f.do("/api/me", tc.authorization)
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.JSONEq(t, `{"code":401,"error":"unauthorized"}`, rec.Body.String())
				assert.False(t, f.called, "handler must not run on a rejected request")
			})
		}
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := BearerToken(req)
	require.Nil(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "Bearer ")
	_, err = BearerToken(req)
	assert.ErrorIs(t, err, ErrTokenMissing)
}
