package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/config"
	"github.com/aliskhannn/ysquiz/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/ysquiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/repository"
	"github.com/aliskhannn/ysquiz/internal/service"
)

// QuestionSets opens the question bank when a database is configured and
// falls back to the question set files otherwise. The returned func releases
// the database pool.
func QuestionSets(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.QuestionSetRepo, func(), error) {
	if !cfg.DB.Enabled() {
		logger.Info("loading question sets from files", zap.String("path", cfg.Quiz.QuestionsPath))

		repo, err := repository.NewQuestionSetRepository(cfg.Quiz.QuestionsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load question sets: %w", err)
		}
		return repo, func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("loading question sets from database")
	return pgrepo.NewQuestionSetRepository(pool), pool.Close, nil
}

// QuizDefaults maps the quiz section of the config onto widget defaults.
func QuizDefaults(cfg *config.Config) quiz.Config {
	qc := quiz.DefaultConfig()
	if cfg.Quiz.Title != "" {
		qc.Title = cfg.Quiz.Title
	}
	if cfg.Quiz.Host != "" {
		qc.Host = cfg.Quiz.Host
	}
	qc.Enumerate = quiz.Bool(cfg.Quiz.Enumerate)
	return qc
}
