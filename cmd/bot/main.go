package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/bootstrap"
	"github.com/aliskhannn/ysquiz/internal/config"
	"github.com/aliskhannn/ysquiz/internal/delivery/telegram"
	"github.com/aliskhannn/ysquiz/internal/logger"
	"github.com/aliskhannn/ysquiz/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg := logger.Must(cfg)
	defer func() { _ = lg.Sync() }()

	token, err := cfg.TelegramToken()
	if err != nil {
		log.Fatal("TELEGRAM_API_TOKEN: ", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to authorize bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	// Set commands.
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.BotCommands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services.
	sets, closeSets, err := bootstrap.QuestionSets(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open question sets", zap.Error(err))
	}
	defer closeSets()

	quizService := service.NewQuizService(sets, bootstrap.QuizDefaults(cfg), cfg.Quiz.DefaultSet)

	handler := telegram.NewHandler(bot, lg, quizService)

	// Start session sweeper.
	sweeper := service.NewSessionSweeper(cfg.Sessions.SweepSchedule, cfg.Sessions.MaxIdle, lg)
	sweeper.Add("telegram", handler)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper stopped", zap.Error(err))
		}
	}()

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
