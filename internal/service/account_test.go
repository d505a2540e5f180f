package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/synapz/pkg/models"
)

func TestRegister(t *testing.T) {
	e := newTestEnv(t)

	sess, err := e.accounts.Register(e.ctx, RegisterInput{Username: " alice ", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "alice", sess.User.Username)
	assert.Equal(t, "alice@example.com", sess.User.Email)
	assert.Equal(t, 10, sess.User.TotalPoints)
	assert.Equal(t, 10, sess.Reward.PointsEarned)

	stored := e.user(t, sess.User.ID)
	assert.Equal(t, 10, stored.TotalPoints)
	require.NotNil(t, stored.LastActive)

	acts, err := e.store.Activities.ListRecent(e.ctx, sess.User.ID, 10)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, models.ActivityRegister, acts[0].ActivityType)
	assert.Equal(t, 10, acts[0].Points)
}

func TestRegister_Rejects(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")

	_, err := e.accounts.Register(e.ctx, RegisterInput{Username: "alice", Email: "new@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = e.accounts.Register(e.ctx, RegisterInput{Username: "al", Email: "al@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "username must be at least 3 characters")

	_, err = e.accounts.Register(e.ctx, RegisterInput{Username: "bob", Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.accounts.Register(e.ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_Streak(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	creds := LoginInput{Email: "alice@example.com", Password: "secret1"}

	// Same day as registration: no streak change, no points, no login activity.
	sess, err := e.accounts.Login(e.ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Reward.PointsEarned)
	assert.Equal(t, 0, sess.User.StreakCount)
	require.NotNil(t, sess.User.LastLogin)

	e.clock.Advance(30 * time.Hour)
	sess, err = e.accounts.Login(e.ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.User.StreakCount)
	assert.Equal(t, 5, sess.Reward.PointsEarned)

	e.clock.Advance(30 * time.Hour)
	sess, err = e.accounts.Login(e.ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 2, sess.User.StreakCount)
	assert.Equal(t, 10, sess.Reward.PointsEarned)

	e.clock.Advance(60 * time.Hour)
	sess, err = e.accounts.Login(e.ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.User.StreakCount)
	assert.Equal(t, 2, sess.User.LongestStreak)
	assert.Equal(t, 5, sess.Reward.PointsEarned)

	stored := e.user(t, u.ID)
	assert.Equal(t, 10+5+10+5, stored.TotalPoints)

	acts, err := e.store.Activities.ListRecent(e.ctx, u.ID, 10)
	require.NoError(t, err)
	logins := 0
	for _, a := range acts {
		if a.ActivityType == models.ActivityLogin {
			logins++
		}
	}
	assert.Equal(t, 3, logins)
}

func TestLogin_StreakBadge(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")
	creds := LoginInput{Email: "alice@example.com", Password: "secret1"}

	var badges []string
	for i := 0; i < 3; i++ {
		e.clock.Advance(25 * time.Hour)
		sess, err := e.accounts.Login(e.ctx, creds)
		require.NoError(t, err)
		badges = append(badges, sess.Reward.NewBadges...)
	}
	assert.Equal(t, []string{"streak_starter"}, badges)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice")

	_, err := e.accounts.Login(e.ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = e.accounts.Login(e.ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = e.accounts.Login(e.ctx, LoginInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfile(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	f := e.fact(t, "Octopus hearts")

	_, err := e.activity.RecordFactRead(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	_, err = e.facts.Create(e.ctx, u.ID, models.FactInput{Title: "Mine", Text: "My own fact", Category: "Art"})
	require.NoError(t, err)

	p, err := e.accounts.Profile(e.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.FactsCreated)
	assert.Equal(t, 20, p.User.TotalXP)
	assert.Equal(t, 1, p.LevelInfo.Level)
	assert.Equal(t, 30, p.LevelInfo.XPForNextLevel)
	require.Len(t, p.Badges, 1)
	assert.Equal(t, "first_steps", p.Badges[0].ID)
	assert.Len(t, p.RecentActivities, 3)

	_, err = e.accounts.Profile(e.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNotifications(t *testing.T) {
	e := newTestEnv(t)
	a := e.register(t, "alice")
	b := e.register(t, "bob")
	chat := int64(777)
	hour := 20

	u, err := e.accounts.UpdateNotifications(e.ctx, a.ID, NotificationInput{TelegramChatID: &chat, ReminderHour: &hour})
	require.NoError(t, err)
	assert.Equal(t, 20, u.ReminderHour)

	_, err = e.accounts.UpdateNotifications(e.ctx, b.ID, NotificationInput{TelegramChatID: &chat})
	assert.ErrorIs(t, err, ErrConflict)

	bad := 24
	_, err = e.accounts.UpdateNotifications(e.ctx, a.ID, NotificationInput{ReminderHour: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
