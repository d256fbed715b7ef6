package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
)

type BaseFixture struct {
	ctx      context.Context
	db       *sql.DB
	t        *testing.T
	tearDown func()
}

func NewBaseFixture(t *testing.T) *BaseFixture {
	ctx, cancel := context.WithCancel(context.Background())

	// one private in-memory database per test; shared cache keeps it alive
	// across the pooled connections
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatal(err)
	}

	migrationfs := os.DirFS("../migrations")
	goose.SetBaseFS(migrationfs)

	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatal(err)
	}

	if err := goose.Up(db, "."); err != nil {
		t.Fatal(err)
	}

	return &BaseFixture{
		ctx: ctx,
		db:  db,
		t:   t,
		tearDown: func() {
			cancel()
			db.Close()
		},
	}
}

// testHasher uses the cheapest bcrypt cost; tests care about behavior, not
// work factor.
func testHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost)
}

func seedUsers(ctx context.Context, t *testing.T, userStore UserStore, hasher PasswordHasher, users ...struct{ Username, Password string }) {
	for _, u := range users {
		hash, err := hasher.Hash(u.Password)
		if err != nil {
			t.Fatal(err)
		}
		if err := userStore.CreateUser(ctx, User{Username: u.Username, PasswordHash: hash}); err != nil {
			t.Fatal(err)
		}
	}
}
