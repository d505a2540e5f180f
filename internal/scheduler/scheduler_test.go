package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/synapz/pkg/models"
)

type fakeUsers struct {
	byHour map[int][]models.User
	hours  []int
}

func (f *fakeUsers) ListForReminder(_ context.Context, hour int) ([]models.User, error) {
	f.hours = append(f.hours, hour)
	return f.byHour[hour], nil
}

type fakeDue map[string]int

func (f fakeDue) DueCount(_ context.Context, userID string) (int, error) {
	n, ok := f[userID]
	if !ok {
		return 0, errors.New("unknown user")
	}
	return n, nil
}

type sentReminder struct {
	chatID int64
	due    int
}

type fakeNotifier struct {
	sent []sentReminder
	fail map[int64]bool
}

func (f *fakeNotifier) SendReminder(chatID int64, dueCount int) error {
	if f.fail[chatID] {
		return errors.New("blocked by user")
	}
	f.sent = append(f.sent, sentReminder{chatID, dueCount})
	return nil
}

func chat(id int64) *int64 { return &id }

func newTestScheduler(users *fakeUsers, due fakeDue, n *fakeNotifier, at time.Time) *Scheduler {
	s := New(users, due, n, Config{StartHour: DefaultNotificationStartHour, EndHour: DefaultNotificationEndHour}, nil)
	s.now = func() time.Time { return at }
	return s
}

func TestCheckAndSendReminders(t *testing.T) {
	users := &fakeUsers{byHour: map[int][]models.User{
		9: {
			{ID: "a", TelegramChatID: chat(100)},
			{ID: "b", TelegramChatID: chat(200)},
			{ID: "c", TelegramChatID: chat(300)},
			{ID: "d", TelegramChatID: chat(400)},
			{ID: "e"},
		},
	}}
	due := fakeDue{"a": 3, "b": 0, "c": 2}
	n := &fakeNotifier{fail: map[int64]bool{300: true}}
	s := newTestScheduler(users, due, n, time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC))

	sent := s.CheckAndSendReminders(context.Background())
	assert.Equal(t, 1, sent)
	assert.Equal(t, []sentReminder{{100, 3}}, n.sent)
	assert.Equal(t, []int{9}, users.hours)
}

func TestCheckAndSendReminders_OutsideWindow(t *testing.T) {
	users := &fakeUsers{}
	n := &fakeNotifier{}
	s := newTestScheduler(users, fakeDue{}, n, time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC))

	assert.Zero(t, s.CheckAndSendReminders(context.Background()))
	assert.Empty(t, users.hours)
	assert.Empty(t, n.sent)
}

func TestCheckAndSendReminders_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	users := &fakeUsers{byHour: map[int][]models.User{12: {{ID: "a", TelegramChatID: chat(1)}}}}
	n := &fakeNotifier{}
	s := New(users, fakeDue{"a": 1}, n, Config{StartHour: 8, EndHour: 22, Location: loc}, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1, s.CheckAndSendReminders(context.Background()))
	assert.Equal(t, []int{12}, users.hours)
}

func TestNextHour(t *testing.T) {
	s := New(&fakeUsers{}, fakeDue{}, &fakeNotifier{}, Config{}, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 9, 17, 5, 0, time.UTC) }
	assert.True(t, time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC).Equal(s.nextHour()))
}
