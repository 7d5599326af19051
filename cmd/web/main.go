package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/bootstrap"
	"github.com/aliskhannn/ysquiz/internal/config"
	"github.com/aliskhannn/ysquiz/internal/delivery/web"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sets, closeSets, err := bootstrap.QuestionSets(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open question sets", zap.Error(err))
	}
	defer closeSets()

	defaults := bootstrap.QuizDefaults(cfg)
	quizService := service.NewQuizService(sets, defaults, cfg.Quiz.DefaultSet)
	handler := web.NewHandler(lg, quizService, defaults.Host)

	sweeper := service.NewSessionSweeper(cfg.Sessions.SweepSchedule, cfg.Sessions.MaxIdle, lg)
	sweeper.Add("web", handler)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(cfg.HTTP.CORSOrigins, cfg.HTTP.CORSCredentials),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http server shutdown failed", zap.Error(err))
	}
}
