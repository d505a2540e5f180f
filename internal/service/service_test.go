package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/pkg/models"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	ctx      context.Context
	store    *database.Store
	clock    *fakeClock
	deps     Deps
	accounts *AccountService
	facts    *FactService
	activity *ActivityService
	reviews  *ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect(database.TypeSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	deps := Deps{
		Store:    database.NewStore(db),
		Log:      logger.Nop(),
		Now:      clock.Now,
		Location: time.UTC,
	}
	return &testEnv{
		ctx:      context.Background(),
		store:    deps.Store,
		clock:    clock,
		deps:     deps,
		accounts: NewAccountService(deps, auth.NewTokenManager("test-secret", time.Hour)),
		facts:    NewFactService(deps),
		activity: NewActivityService(deps),
		reviews:  NewReviewService(deps),
	}
}

func (e *testEnv) register(t *testing.T, name string) *models.User {
	t.Helper()
	sess, err := e.accounts.Register(e.ctx, RegisterInput{Username: name, Email: name + "@example.com", Password: "secret1"})
	require.NoError(t, err)
	return sess.User
}

func (e *testEnv) fact(t *testing.T, title string) *models.Fact {
	t.Helper()
	f := &models.Fact{
		Title:       title,
		Text:        "Some fairly long text about " + title + " that easily passes validation.",
		TextHash:    textHash(title),
		Category:    "Science",
		IsPublished: true,
		CreatedAt:   e.clock.Now(),
	}
	require.NoError(t, e.store.Facts.Create(e.ctx, f))
	e.clock.Advance(time.Second)
	return f
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := e.store.Users.GetByID(e.ctx, id)
	require.NoError(t, err)
	return u
}
