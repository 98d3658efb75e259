package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"habit-planner/internal/config"
	"habit-planner/internal/push"
	"habit-planner/internal/repository"
	"habit-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	dispatcher := &push.Dispatcher{}
	if cfg.WebPushEnabled() {
		dispatcher.WebPush = push.NewWebPush(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject)
	}
	if cfg.TelegramEnabled() {
		tg, err := push.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram")
		}
		dispatcher.Telegram = tg
	}

	alertSvc := service.NewAlertService(
		taskRepo, subRepo, userRepo, dispatcher,
		cfg.AppTitle, cfg.AppURL,
		log.With().Str("component", "alerts").Logger(),
	)

	// Sweeps run on UTC wall clock; each user's local minute is
	// derived inside the sweep from their stored timezone.
	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleEveryMinute(func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 55*time.Second)
		defer cancel()
		alertSvc.Sweep(sweepCtx, time.Now())
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule sweep")
	}
	scheduler.Start()

	log.Info().Msg("habit planner alert daemon started")
	<-ctx.Done()
	scheduler.Stop()
	log.Info().Msg("shutdown complete")
}
