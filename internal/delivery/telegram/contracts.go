package telegram

import (
	"context"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/quiz"
)

type QuizService interface {
	StartAt(ctx context.Context, session *quiz.Session, name, selector string) (*entities.QuestionSet, error)
	Sets(ctx context.Context) ([]string, error)
	DefaultSet() string
}
