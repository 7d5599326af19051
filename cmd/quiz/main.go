package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/bootstrap"
	"github.com/aliskhannn/ysquiz/internal/config"
	"github.com/aliskhannn/ysquiz/internal/delivery/terminal"
	"github.com/aliskhannn/ysquiz/internal/logger"
	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/service"
)

var errEmptySet = errors.New("question set is empty")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ysquiz:", err)
		os.Exit(1)
	}
}

// run plays one quiz in the terminal. Deferred cleanup runs before main exits.
func run() error {
	set := pflag.StringP("set", "s", "", "question set to play (default from config)")
	noColor := pflag.Bool("no-color", false, "disable colors")
	logPath := pflag.String("log", "ysquiz.log", "log file")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the quiz, so logs go to a file.
	lg, err := logger.NewFile(cfg, *logPath)
	if err != nil {
		lg = zap.NewNop()
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()

	sets, closeSets, err := bootstrap.QuestionSets(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeSets()

	defaults := bootstrap.QuizDefaults(cfg)
	quizService := service.NewQuizService(sets, defaults, cfg.Quiz.DefaultSet)

	screen := quiz.NewScreen()
	session := quiz.NewSession(
		terminal.NewHost(os.Stdout, defaults.Host, screen),
		quiz.WithLogger(lg),
	)

	start := func(s *quiz.Session) error {
		_, err := quizService.Start(ctx, s, *set, nil)
		return err
	}
	if err := start(session); err != nil {
		return err
	}
	if session.Stats().Total == 0 {
		return errEmptySet
	}

	model := terminal.NewModel(session, screen, start, terminal.Options{NoColor: *noColor})
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		lg.Error("terminal ui failed", zap.Error(err))
		return fmt.Errorf("terminal ui: %w", err)
	}

	stats := final.(terminal.Model).Stats()
	lg.Info("quiz closed",
		zap.Int("answered", stats.Position),
		zap.Int("correct", stats.Correct),
		zap.Int("wrong", stats.Wrong),
	)
	return nil
}
