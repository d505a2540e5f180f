package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/synapz/pkg/models"
)

func TestFactList(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	var facts []*models.Fact
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		facts = append(facts, e.fact(t, title))
	}
	_, err := e.facts.ToggleSave(e.ctx, u.ID, facts[4].ID)
	require.NoError(t, err)

	page, err := e.facts.List(e.ctx, ListFactsInput{Page: 1, Limit: 2}, u.ID)
	require.NoError(t, err)
	require.Len(t, page.Facts, 2)
	assert.Equal(t, "Five", page.Facts[0].Title)
	assert.True(t, page.Facts[0].IsSaved)
	assert.False(t, page.Facts[1].IsSaved)
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 5, TotalPages: 3, HasNextPage: true}, page.Pagination)

	page, err = e.facts.List(e.ctx, ListFactsInput{Page: 3, Limit: 2}, "")
	require.NoError(t, err)
	require.Len(t, page.Facts, 1)
	assert.Equal(t, "One", page.Facts[0].Title)
	assert.False(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPrevPage)

	page, err = e.facts.List(e.ctx, ListFactsInput{Page: -1, Limit: 1000, Category: "History"}, "")
	require.NoError(t, err)
	assert.Empty(t, page.Facts)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 100, page.Pagination.Limit)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestFactCreate(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	in := models.FactInput{Title: "Bananas are berries", Text: "Botanically, bananas are berries.", Category: "Food", Keywords: []string{"banana"}}

	created, err := e.facts.Create(e.ctx, u.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 15, created.Reward.XPEarned)
	assert.Equal(t, 15, created.Reward.PointsEarned)
	require.NotNil(t, created.Fact.AuthorID)
	assert.Equal(t, u.ID, *created.Fact.AuthorID)
	assert.NotEmpty(t, created.Fact.TextHash)

	_, err = e.facts.Create(e.ctx, u.ID, in)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = e.facts.Create(e.ctx, u.ID, models.FactInput{Title: "No category", Text: "text"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.facts.Create(e.ctx, u.ID, models.FactInput{Title: "Bad URL", Text: "text", Category: "Art", ImageURL: "nope"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored := e.user(t, u.ID)
	assert.Equal(t, 25, stored.TotalPoints)
	assert.Equal(t, 15, stored.TotalXP)
}

func TestToggleSave(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	f := e.fact(t, "Octopus hearts")

	saved, err := e.facts.ToggleSave(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "saved", saved.Action)
	assert.True(t, saved.IsSaved)
	assert.Equal(t, 1, saved.SavedCount)
	require.NotNil(t, saved.Reward)
	assert.Equal(t, 1, saved.Reward.XPEarned)
	assert.Equal(t, 2, saved.Reward.PointsEarned)

	sf, err := e.store.SavedFacts.GetByUserAndFact(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sf.Interval)
	assert.Equal(t, 2.5, sf.EaseFactor)
	assert.True(t, sf.NextReviewDate.Equal(e.clock.Now()))

	unsaved, err := e.facts.ToggleSave(e.ctx, u.ID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "unsaved", unsaved.Action)
	assert.False(t, unsaved.IsSaved)
	assert.Equal(t, 0, unsaved.SavedCount)
	assert.Nil(t, unsaved.Reward)

	stored := e.user(t, u.ID)
	assert.Equal(t, 1, stored.FactsSaved)
	assert.Equal(t, 12, stored.TotalPoints)

	_, err = e.facts.ToggleSave(e.ctx, u.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSaved(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "alice")
	a := e.fact(t, "Octopus hearts")
	b := e.fact(t, "Honey never spoils")
	for _, f := range []*models.Fact{a, b} {
		_, err := e.facts.ToggleSave(e.ctx, u.ID, f.ID)
		require.NoError(t, err)
		e.clock.Advance(time.Second)
	}

	all, err := e.facts.ListSaved(e.ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.NotEmpty(t, all[0].SavedFactID)
	assert.Equal(t, 1, all[0].Interval)

	found, err := e.facts.ListSaved(e.ctx, u.ID, "octopus")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)
}
