package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/pkg/models"
)

// Default notification window, inclusive
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

const runTimeout = 5 * time.Minute

// Notifier delivers a due-review reminder to a linked chat
type Notifier interface {
	SendReminder(chatID int64, dueCount int) error
}

// UserLister finds users whose reminder hour matches
type UserLister interface {
	ListForReminder(ctx context.Context, hour int) ([]models.User, error)
}

// DueCounter counts a user's saved facts due today
type DueCounter interface {
	DueCount(ctx context.Context, userID string) (int, error)
}

// Config controls when reminders go out
type Config struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserLister
	reviews   DueCounter
	notifier  Notifier
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new scheduler instance
func New(users UserLister, reviews DueCounter, notifier Notifier, cfg Config, log *logger.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(cfg.Location),
		users:     users,
		reviews:   reviews,
		notifier:  notifier,
		cfg:       cfg,
		log:       log.With("component", "scheduler"),
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	// Hourly, on the hour
	_, err := s.scheduler.Every(1).Hour().StartAt(s.nextHour()).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.CheckAndSendReminders(ctx)
	})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("reminder scheduler started", "start_hour", s.cfg.StartHour, "end_hour", s.cfg.EndHour)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) nextHour() time.Time {
	return s.now().In(s.cfg.Location).Truncate(time.Hour).Add(time.Hour)
}

// CheckAndSendReminders notifies users whose reminder hour is the current hour
// and who have facts due. It returns how many reminders were sent.
func (s *Scheduler) CheckAndSendReminders(ctx context.Context) int {
	currentHour := s.now().In(s.cfg.Location).Hour()
	if currentHour < s.cfg.StartHour || currentHour > s.cfg.EndHour {
		s.log.Debug("outside notification hours, skipping reminders",
			"hour", currentHour, "start_hour", s.cfg.StartHour, "end_hour", s.cfg.EndHour)
		return 0
	}

	users, err := s.users.ListForReminder(ctx, currentHour)
	if err != nil {
		s.log.Error("failed to get users for reminder", "error", err)
		return 0
	}

	sent := 0
	for _, user := range users {
		if user.TelegramChatID == nil {
			continue
		}
		due, err := s.reviews.DueCount(ctx, user.ID)
		if err != nil {
			s.log.Error("failed to count due facts", "user_id", user.ID, "error", err)
			continue
		}
		if due == 0 {
			continue
		}
		if err := s.notifier.SendReminder(*user.TelegramChatID, due); err != nil {
			s.log.Warn("failed to send reminder", "user_id", user.ID, "error", err)
			continue
		}
		sent++
	}
	s.log.Info("reminders sent", "hour", currentHour, "candidates", len(users), "sent", sent)
	return sent
}
