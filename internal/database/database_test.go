package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/synapz/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Connect(TypeSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func createUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func createFact(t *testing.T, s *Store, title, category string, at time.Time) *models.Fact {
	t.Helper()
	f := &models.Fact{
		Title:       title,
		Text:        "Text of " + title,
		TextHash:    title,
		Category:    category,
		IsPublished: true,
		CreatedAt:   at,
	}
	require.NoError(t, s.Facts.Create(context.Background(), f))
	return f
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 1, u.Level)

	got, err := s.Users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.StringList{}, got.Badges)
	assert.Nil(t, got.LastActive)

	_, err = s.Users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Users.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)

	exists, err := s.Users.ExistsByEmailOrUsername(ctx, "nobody@example.com", "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.FixedZone("X", 3*3600))
	progress := got.UserProgress
	progress.TotalXP = 120
	progress.Level = 2
	progress.Badges = models.StringList{"first_steps"}
	progress.LastActive = &now
	require.NoError(t, s.Users.UpdateProgress(ctx, u.ID, progress))

	got, err = s.Users.GetByIDForUpdate(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.TotalXP)
	assert.Equal(t, models.StringList{"first_steps"}, got.Badges)
	require.NotNil(t, got.LastActive)
	assert.True(t, now.Equal(*got.LastActive))

	assert.ErrorIs(t, s.Users.UpdateProgress(ctx, "missing", progress), ErrNotFound)
}

func TestUserRepository_Reminders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	a := createUser(t, s, "alice")
	createUser(t, s, "bob")

	chat := int64(4242)
	require.NoError(t, s.Users.UpdateNotifications(ctx, a.ID, &chat, 18))

	users, err := s.Users.ListForReminder(ctx, 18)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, a.ID, users[0].ID)

	got, err := s.Users.GetByTelegramChatID(ctx, chat)
	require.NoError(t, err)
	assert.Equal(t, 18, got.ReminderHour)

	users, err = s.Users.ListForReminder(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFactRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	author := createUser(t, s, "writer")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	createFact(t, s, "Octopus hearts", "Animals", base)
	createFact(t, s, "Honey never spoils", "Food", base.Add(time.Hour))
	withAuthor := &models.Fact{Title: "Bananas are berries", Text: "t", TextHash: "h", Category: "Food",
		AuthorID: &author.ID, IsPublished: true, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, s.Facts.Create(ctx, withAuthor))
	require.NoError(t, s.Facts.Create(ctx, &models.Fact{Title: "Draft", Text: "t", TextHash: "d", Category: "Food"}))

	err := s.Facts.Create(ctx, &models.Fact{Title: "Octopus hearts", Text: "x", TextHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)

	facts, total, err := s.Facts.List(ctx, FactFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, facts, 2)
	assert.Equal(t, "Bananas are berries", facts[0].Title)
	require.NotNil(t, facts[0].AuthorUsername)
	assert.Equal(t, "writer", *facts[0].AuthorUsername)
	assert.Nil(t, facts[1].AuthorUsername)

	facts, total, err = s.Facts.List(ctx, FactFilter{Category: "Food", Limit: 10, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, facts, 1)
	assert.Equal(t, "Honey never spoils", facts[0].Title)

	exists, err := s.Facts.ExistsByTitle(ctx, "Honey never spoils")
	require.NoError(t, err)
	assert.True(t, exists)

	titles, err := s.Facts.ExistingTitles(ctx, []string{"Honey never spoils", "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Honey never spoils": true}, titles)

	counts, err := s.Facts.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryCount{{Category: "Food", Count: 3}, {Category: "Animals", Count: 1}}, counts)

	n, err := s.Facts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	recent, err := s.Facts.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	_, err = s.Facts.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSavedFactRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	f1 := createFact(t, s, "Octopus hearts", "Animals", day)
	f2 := createFact(t, s, "Honey never spoils", "Food", day)

	sf1 := &models.SavedFact{UserID: u.ID, FactID: f1.ID, Interval: 1, EaseFactor: 2.5, NextReviewDate: day, CreatedAt: day}
	require.NoError(t, s.SavedFacts.Create(ctx, sf1))
	sf2 := &models.SavedFact{UserID: u.ID, FactID: f2.ID, Interval: 3, EaseFactor: 2.5,
		NextReviewDate: day.AddDate(0, 0, 3), CreatedAt: day.Add(time.Minute)}
	require.NoError(t, s.SavedFacts.Create(ctx, sf2))

	err := s.SavedFacts.Create(ctx, &models.SavedFact{UserID: u.ID, FactID: f1.ID, Interval: 1, NextReviewDate: day})
	assert.ErrorIs(t, err, ErrDuplicate)

	endOfDay := day.Add(24*time.Hour - time.Nanosecond)
	due, err := s.SavedFacts.ListDue(ctx, u.ID, endOfDay)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, sf1.ID, due[0].ID)
	assert.Equal(t, "Octopus hearts", due[0].Fact.Title)
	assert.Equal(t, f1.ID, due[0].Fact.ID)

	count, err := s.SavedFacts.CountDue(ctx, u.ID, day.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := s.SavedFacts.ListByUser(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sf2.ID, list[0].ID)

	list, err = s.SavedFacts.ListByUser(ctx, u.ID, "  HONEY ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f2.ID, list[0].FactID)

	ids, err := s.SavedFacts.SavedFactIDs(ctx, u.ID, []string{f1.ID, "other"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{f1.ID: true}, ids)

	reviewed := day.Add(5 * time.Hour)
	sf1.Interval = 3
	sf1.TimesReviewed = 1
	sf1.TimesRemembered = 1
	sf1.NextReviewDate = day.AddDate(0, 0, 3)
	sf1.LastReviewedAt = &reviewed
	require.NoError(t, s.SavedFacts.UpdateSchedule(ctx, sf1))

	got, err := s.SavedFacts.GetForUser(ctx, sf1.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Interval)
	assert.True(t, got.NextReviewDate.Equal(day.AddDate(0, 0, 3)))

	_, err = s.SavedFacts.GetForUser(ctx, sf1.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := s.Statistics.ReviewStats(ctx, u.ID, endOfDay)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStats{TotalSaved: 2, DueToday: 0, TotalReviews: 1, TotalRemembered: 1}, stats)

	require.NoError(t, s.SavedFacts.Delete(ctx, sf1.ID))
	n, err := s.SavedFacts.CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, s.SavedFacts.Delete(ctx, sf1.ID), ErrNotFound)
}

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "alice")
	factID := "fact-1"
	at := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.Activities.Create(ctx, &models.Activity{
		UserID: u.ID, ActivityType: models.ActivityFactRead, Points: 5, XP: 5,
		ReferenceID: &factID, Metadata: models.Metadata{"category": "Animals"}, CreatedAt: at,
	}))

	startOfDay := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	exists, err := s.Activities.ExistsSince(ctx, u.ID, models.ActivityFactRead, factID, startOfDay)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Activities.ExistsSince(ctx, u.ID, models.ActivityFactRead, factID, startOfDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.Activities.ExistsSince(ctx, u.ID, models.ActivityFactSaved, factID, startOfDay)
	require.NoError(t, err)
	assert.False(t, exists)

	list, err := s.Activities.ListRecent(ctx, u.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Animals", list[0].Metadata["category"])
	assert.Equal(t, models.ActivityFactRead, list[0].ActivityType)
}

func TestStoreWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *Store) error {
		u := &models.User{Username: "ghost", Email: "ghost@example.com", PasswordHash: "x"}
		require.NoError(t, tx.Users.Create(ctx, u))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := s.Users.ExistsByEmailOrUsername(ctx, "ghost@example.com", "ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	err = s.WithTx(ctx, func(tx *Store) error {
		return tx.WithTx(ctx, func(inner *Store) error {
			return inner.Users.Create(ctx, &models.User{Username: "kept", Email: "kept@example.com", PasswordHash: "x"})
		})
	})
	require.NoError(t, err)

	exists, err = s.Users.ExistsByEmailOrUsername(ctx, "kept@example.com", "kept")
	require.NoError(t, err)
	assert.True(t, exists)
}
