package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/synapz/pkg/models"
)

func TestRecordFactRead_OncePerDay(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	f := e.fact(t, "Octopus hearts")

	first, err := e.activity.RecordFactRead(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, first.XPEarned)
	assert.Equal(t, 5, first.PointsEarned)
	assert.False(t, first.AlreadyRecorded)
	assert.Equal(t, []string{"first_steps"}, first.NewBadges)

	second, err := e.activity.RecordFactRead(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.XPEarned)
	assert.Equal(t, 0, second.PointsEarned)
	assert.True(t, second.AlreadyRecorded)
	assert.Equal(t, "Fact already read today", second.Message)

	stored := e.user(t, u.ID)
	assert.Equal(t, 1, stored.FactsRead)
	assert.Equal(t, 5, stored.TotalXP)
	assert.Equal(t, 15, stored.TotalPoints)

	// Next calendar day counts again.
	e.clock.Advance(24 * time.Hour)
	third, err := e.activity.RecordFactRead(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, third.XPEarned)
	assert.Empty(t, third.NewBadges)
	assert.Equal(t, 2, e.user(t, u.ID).FactsRead)
}

func TestRecordFactRead_LevelUpBonus(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	f := e.fact(t, "Octopus hearts")

	p := e.user(t, u.ID).UserProgress
	p.TotalXP = 48
	require.NoError(t, e.store.Users.UpdateProgress(e.ctx, u.ID, p))

	res, err := e.activity.RecordFactRead(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 55, res.XPEarned)

	stored := e.user(t, u.ID)
	assert.Equal(t, 103, stored.TotalXP)
	assert.Equal(t, 2, stored.Level)
}

func TestRecordFactRead_Errors(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")

	_, err := e.activity.RecordFactRead(e.ctx, u.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.activity.RecordFactRead(e.ctx, u.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing was credited by the failed attempts.
	stored := e.user(t, u.ID)
	assert.Equal(t, 0, stored.FactsRead)
	acts, err := e.activity.List(e.ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, acts, 1)
}

func TestRecord_Dispatch(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	f := e.fact(t, "Octopus hearts")

	res, err := e.activity.Record(e.ctx, u.ID, RecordActivityInput{ActivityType: "wiki_click", FactID: f.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, res.XPEarned)
	assert.Equal(t, 0, res.PointsEarned)
	assert.Equal(t, 1, e.user(t, u.ID).WikiClicks)
	e.clock.Advance(time.Second)

	res, err = e.activity.Record(e.ctx, u.ID, RecordActivityInput{ActivityType: "fact_read", FactID: f.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, res.XPEarned)

	_, err = e.activity.Record(e.ctx, u.ID, RecordActivityInput{ActivityType: "dance"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	acts, err := e.activity.List(e.ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, acts, 3)
	assert.Equal(t, models.ActivityFactRead, acts[0].ActivityType)
}
