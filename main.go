package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/synapz/internal/ai"
	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/bot"
	"github.com/example/synapz/internal/config"
	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/excel"
	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/internal/scheduler"
	"github.com/example/synapz/internal/server"
	"github.com/example/synapz/internal/service"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	db, err := database.Connect(cfg.DBType, cfg.DSN())
	if err != nil {
		lg.Fatal("failed to connect to database", "db_type", cfg.DBType, "error", err)
	}
	store := database.NewStore(db)
	defer store.Close()

	deps := service.Deps{Store: store, Log: lg, Location: cfg.Location}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], deps, lg); err != nil {
			lg.Fatal("command failed", "command", os.Args[1], "error", err)
		}
		return
	}

	// Создаем контекст, который отменяется по сигналу
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	reviews := service.NewReviewService(deps)

	var generator service.FactGenerator
	if cfg.OpenAIAPIKey != "" {
		chatGPT, err := ai.New(ai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			Categories: service.Categories,
		}, lg)
		if err != nil {
			lg.Warn("AI generator disabled", "error", err)
		} else {
			generator = chatGPT
		}
	} else {
		lg.Info("OPENAI_API_KEY not set, AI generator disabled")
	}

	if cfg.TelegramBotToken != "" {
		botCfg := bot.DefaultConfig(cfg.TelegramBotToken)
		botCfg.AppURL = cfg.AppURL
		b, err := bot.New(botCfg, store.Users, reviews, lg)
		if err != nil {
			lg.Error("failed to start telegram bot", "error", err)
		} else {
			go b.Start(ctx)
			defer b.Stop()

			if cfg.EnableScheduler {
				sched := scheduler.New(store.Users, reviews, b, scheduler.Config{
					StartHour: cfg.NotificationStartHour,
					EndHour:   cfg.NotificationEndHour,
					Location:  cfg.Location,
				}, lg)
				if err := sched.Start(); err != nil {
					lg.Error("failed to start scheduler", "error", err)
				} else {
					defer sched.Stop()
				}
			}
		}
	} else {
		lg.Info("TELEGRAM_BOT_TOKEN not set, reminders disabled")
	}

	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(server.Config{
		CORSOrigins:  cfg.CORSOrigins,
		AdminSecret:  cfg.AdminSecret,
		SecureCookie: cfg.SecureCookie,
	}, server.Services{
		Store:    store,
		Tokens:   tokens,
		Accounts: service.NewAccountService(deps, tokens),
		Facts:    service.NewFactService(deps),
		Activity: service.NewActivityService(deps),
		Reviews:  reviews,
		Admin:    service.NewAdminService(deps, generator),
	}, lg)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	// Даем время на graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		lg.Error("error during shutdown", "error", err)
	}
	lg.Info("stopped")
}

// runCommand handles CLI subcommands
func runCommand(args []string, deps service.Deps, lg *logger.Logger) error {
	switch args[0] {
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: synapz import <file.xlsx|file.csv>")
		}
		imported, err := excel.ImportFile(args[1], excel.DefaultImportConfig())
		if err != nil {
			return err
		}
		for _, e := range imported.Errors {
			lg.Warn("skipped row", "file", args[1], "reason", e)
		}
		res, err := service.NewAdminService(deps, nil).Seed(context.Background(), service.SeedInput{Facts: imported.Facts})
		if err != nil {
			return err
		}
		for _, f := range res.Facts {
			if !f.Added {
				lg.Info("fact not imported", "title", f.Title, "reason", f.Reason)
			}
		}
		lg.Info("import finished",
			"file", args[1],
			"rows", imported.TotalProcessed,
			"added", res.TotalAdded,
			"duplicates", res.DuplicatesSkipped,
			"errors", len(res.Errors))
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
