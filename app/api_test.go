package wayfarer

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type APIFixture struct {
	handler  http.Handler
	db       *sql.DB
	tearDown func()
}

// NewAPIFixture wires the full /api router against a per-test in-memory
// database, mounted the same way the app mounts it so the route policy sees
// real request paths.
func NewAPIFixture(t *testing.T) *APIFixture {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.Nil(t, err)

	goose.SetBaseFS(os.DirFS("../migrations"))
	require.Nil(t, goose.SetDialect("sqlite3"))
	require.Nil(t, goose.Up(db, "."))

	userStore := core.NewSQLiteUserStore(db)
	locationStore := core.NewSQLiteLocationStore(db)
	hazardStore := core.NewSQLiteHazardStore(db)

	codec := core.NewTokenCodec([]byte("api-test-secret"))
	hasher := core.NewBcryptHasher(bcrypt.MinCost)
	policy, err := DefaultRoutePolicy()
	require.Nil(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := newAPIRouter(apiDeps{
		auth:         core.NewAuthService(userStore, hasher, codec, core.DefaultTokenTTL),
		codec:        codec,
		policy:       policy,
		users:        userStore,
		locations:    locationStore,
		destinations: core.NewSQLiteDestinationStore(db),
		hazards:      hazardStore,
		messages:     core.NewSQLiteMessageStore(db),
		groups:       core.NewSQLiteGroupStore(db),
		search:       core.NewSearchService(locationStore, userStore, hazardStore),
		weather:      core.NewStaticWeatherProvider(),
	}, logger)

	root := router.New(router.WithLogger(logger))
	root.Mount("/api", api)

	return &APIFixture{
		handler:  root,
		db:       db,
		tearDown: func() { db.Close() },
	}
}

func (f *APIFixture) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.Nil(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *APIFixture) register(t *testing.T, username, password string) {
	rec := f.do(t, http.MethodPost, "/api/auth/register", "", RegisterPayload{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (f *APIFixture) login(t *testing.T, username, password string) string {
	rec := f.do(t, http.MethodPost, "/api/auth/login", "", LoginPayload{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session core.Session
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("register login me", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		f.register(t, "alice", "password123")
		token := f.login(t, "alice", "password123")

		rec := f.do(t, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var profile map[string]any
		require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, "alice", profile["username"])

		// password must be present and explicitly null
		password, present := profile["password"]
		assert.True(t, present)
		assert.Nil(t, password)
	})

	t.Run("register response body", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		rec := f.do(t, http.MethodPost, "/api/auth/register", "", RegisterPayload{
			Username: "alice",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User registered successfully."}`, rec.Body.String())
	})

	t.Run("duplicate registration", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		f.register(t, "alice", "password123")
		rec := f.do(t, http.MethodPost, "/api/auth/register", "", RegisterPayload{
			Username: "alice",
			Password: "different456",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"error":"Username already exists."}`, rec.Body.String())
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		f.register(t, "alice", "password123")

		for _, payload := range []LoginPayload{
			{Username: "alice", Password: "wrongpassword"},
			{Username: "ghost", Password: "password123"},
		} {
			rec := f.do(t, http.MethodPost, "/api/auth/login", "", payload)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"code":401,"error":"Invalid credentials."}`, rec.Body.String())
		}
	})

	t.Run("me without a token", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		rec := f.do(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("register payload validation", func(t *testing.T) {
		f := NewAPIFixture(t)
		defer f.tearDown()

		rec := f.do(t, http.MethodPost, "/api/auth/register", "", RegisterPayload{
			Username: "al",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouteProtection(t *testing.T) {
	f := NewAPIFixture(t)
	defer f.tearDown()

	t.Run("public endpoints work without a token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/weather?latitude=40.7&longitude=-74.0", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/locations/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected endpoints 401 without a token", func(t *testing.T) {
		for _, path := range []string{"/api/destinations/", "/api/hazards/", "/api/users/me", "/api/groups/"} {
			rec := f.do(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
	})

	t.Run("protected endpoints work with a token", func(t *testing.T) {
		f.register(t, "bob", "password123")
		token := f.login(t, "bob", "password123")

		rec := f.do(t, http.MethodGet, "/api/destinations/", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestDestinationEndpoints(t *testing.T) {
	f := NewAPIFixture(t)
	defer f.tearDown()

	f.register(t, "alice", "password123")
	aliceToken := f.login(t, "alice", "password123")
	f.register(t, "bob", "password123")
	bobToken := f.login(t, "bob", "password123")

	rec := f.do(t, http.MethodPost, "/api/destinations/", aliceToken, DestinationPayload{
		Name:      "Eiffel Tower",
		Latitude:  48.8584,
		Longitude: 2.2945,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.Destination
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Owner)

	// destinations are scoped to their owner
	rec = f.do(t, http.MethodGet, "/api/destinations/", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(t, http.MethodDelete, "/api/destinations/"+created.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/destinations/"+created.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSearchEndpoint(t *testing.T) {
	f := NewAPIFixture(t)
	defer f.tearDown()

	f.register(t, "wanderer", "password123")

	rec := f.do(t, http.MethodPost, "/api/search", "", SearchPayload{Query: "wand", Type: "users"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var results []core.SearchResult
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "wanderer", results[0].Name)

	rec = f.do(t, http.MethodPost, "/api/search", "", SearchPayload{Query: "x", Type: "starships"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
