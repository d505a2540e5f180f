package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/pkg/models"
)

const recentActivityLimit = 10

// RegisterInput is a sign-up request
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is a sign-in request
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NotificationInput updates reminder settings. A nil chat ID unlinks Telegram.
type NotificationInput struct {
	TelegramChatID *int64 `json:"telegram_chat_id"`
	ReminderHour   *int   `json:"reminder_hour" validate:"omitempty,min=0,max=23"`
}

// Session is returned after a successful sign-up or sign-in
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *models.User   `json:"user"`
	Reward    ActivityResult `json:"reward"`
}

// Profile is the authenticated user's view of their progress
type Profile struct {
	User             *models.User              `json:"user"`
	LevelInfo        progression.LevelProgress `json:"level_info"`
	Badges           []progression.Badge       `json:"badges"`
	FactsCreated     int                       `json:"facts_created"`
	RecentActivities []models.Activity         `json:"recent_activities"`
}

// AccountService handles registration, login and profile reads
type AccountService struct {
	Deps
	tokens *auth.TokenManager
}

// NewAccountService creates an account service
func NewAccountService(deps Deps, tokens *auth.TokenManager) *AccountService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "account")
	return &AccountService{Deps: deps, tokens: tokens}
}

// Register creates a user, credits the sign-up bonus and opens a session
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		ReminderHour: 9,
		CreatedAt:    now,
	}
	user.Level = 1
	user.LastActive = &now

	var reward ActivityResult
	err = s.Store.WithTx(ctx, func(tx *database.Store) error {
		taken, err := tx.Users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: user with this email or username already exists", ErrConflict)
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return storeErr(err, "user with this email or username already exists")
		}
		r, _ := progression.RewardFor(models.ActivityRegister)
		reward, err = applyCredit(ctx, tx, user, credit{
			activity: models.ActivityRegister,
			reward:   r,
			metadata: models.Metadata{"welcome": true},
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	reward.Message = "Welcome to Synapz"

	s.Log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.session(user, reward)
}

// Login verifies credentials, applies the daily streak rule and opens a session
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	found, err := s.Store.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if err := auth.CheckPassword(found.PasswordHash, in.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := s.Now()
	var (
		user   *models.User
		reward ActivityResult
	)
	err = s.Store.WithTx(ctx, func(tx *database.Store) error {
		u, err := lockUser(ctx, tx, found.ID)
		if err != nil {
			return err
		}
		streak := progression.ComputeLoginStreak(u.LastActive, u.StreakCount, u.LongestStreak, now)
		reward, err = applyCredit(ctx, tx, u, credit{
			activity: models.ActivityLogin,
			reward:   progression.Reward{Points: streak.PointsAwarded},
			metadata: models.Metadata{"streak_count": streak.StreakCount},
			bump: func(p *models.UserProgress) {
				p.StreakCount = streak.StreakCount
				p.LongestStreak = streak.LongestStreak
				p.LastLogin = &now
			},
			touch:    true,
			unlogged: streak.PointsAwarded == 0,
		}, now)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	reward.Message = fmt.Sprintf("%d day streak", user.StreakCount)

	s.Log.Info("user logged in", "user_id", user.ID, "streak", user.StreakCount, "points", reward.PointsEarned)
	return s.session(user, reward)
}

func (s *AccountService) session(user *models.User, reward ActivityResult) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ExpiresAt: s.Now().Add(s.tokens.TTL()),
		User:      user,
		Reward:    reward,
	}, nil
}

// Profile returns the user's progress, level, unlocked badges and recent activity
func (s *AccountService) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	levelInfo, err := progression.ComputeLevel(user.TotalXP)
	if err != nil {
		return nil, err
	}
	created, err := s.Store.Facts.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	activities, err := s.Store.Activities.ListRecent(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	badges := make([]progression.Badge, 0, len(user.Badges))
	for _, id := range user.Badges {
		if b, ok := progression.BadgeByID(id); ok {
			badges = append(badges, b)
		}
	}

	return &Profile{
		User:             user,
		LevelInfo:        levelInfo,
		Badges:           badges,
		FactsCreated:     created,
		RecentActivities: activities,
	}, nil
}

// UpdateNotifications stores the Telegram chat and reminder hour of a user
func (s *AccountService) UpdateNotifications(ctx context.Context, userID string, in NotificationInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	hour := user.ReminderHour
	if in.ReminderHour != nil {
		hour = *in.ReminderHour
	}
	if err := s.Store.Users.UpdateNotifications(ctx, userID, in.TelegramChatID, hour); err != nil {
		return nil, storeErr(err, "telegram chat is linked to another account")
	}
	user.TelegramChatID = in.TelegramChatID
	user.ReminderHour = hour
	return user, nil
}
