package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/quiz"
)

type QuestionSetRepo interface {
	GetByName(ctx context.Context, name string) (*entities.QuestionSet, error)
	List(ctx context.Context) ([]string, error)
}

// QuizService starts quiz sessions from stored question sets.
type QuizService struct {
	sets       QuestionSetRepo
	defaults   quiz.Config
	defaultSet string
}

func NewQuizService(sets QuestionSetRepo, defaults quiz.Config, defaultSet string) *QuizService {
	return &QuizService{
		sets:       sets,
		defaults:   defaults,
		defaultSet: defaultSet,
	}
}

// Start loads the named question set, the default one when name is empty,
// and (re)initializes session with it. A nil container lets the session's
// host resolve the configured selector.
func (s *QuizService) Start(
	ctx context.Context, session *quiz.Session, name string, container quiz.Container,
) (*entities.QuestionSet, error) {
	return s.start(ctx, session, name, func(cfg *quiz.Config) {
		if container != nil {
			cfg.Container = container
		}
	})
}

// StartAt is Start with the host selector replaced, for hosts that address
// one container per user.
func (s *QuizService) StartAt(
	ctx context.Context, session *quiz.Session, name, selector string,
) (*entities.QuestionSet, error) {
	return s.start(ctx, session, name, func(cfg *quiz.Config) {
		cfg.Host = selector
	})
}

func (s *QuizService) start(
	ctx context.Context, session *quiz.Session, name string, override func(cfg *quiz.Config),
) (*entities.QuestionSet, error) {
	if name == "" {
		name = s.defaultSet
	}

	set, err := s.sets.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	cfg := s.defaults
	if set.Title != "" {
		cfg.Title = set.Title
	}
	override(&cfg)

	if err := session.Init(set.Questions, cfg); err != nil {
		return nil, fmt.Errorf("init quiz %q: %w", set.Name, err)
	}

	return set, nil
}

// Sets lists the available question sets.
func (s *QuizService) Sets(ctx context.Context) ([]string, error) {
	return s.sets.List(ctx)
}

// DefaultSet returns the set started when none is named.
func (s *QuizService) DefaultSet() string {
	return s.defaultSet
}
