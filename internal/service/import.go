package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	pgrepo "github.com/aliskhannn/ysquiz/internal/infra/postgres/repository"
)

var ErrEmptyQuestionSet = errors.New("question set has no questions")

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// ImportService copies question sets into the database question bank.
type ImportService struct {
	tx Transactor
}

func NewImportService(tx Transactor) *ImportService {
	return &ImportService{tx: tx}
}

// Import replaces the stored set of the same name in a single transaction.
func (s *ImportService) Import(ctx context.Context, set *entities.QuestionSet) error {
	if len(set.Questions) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyQuestionSet, set.Name)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return pgrepo.NewQuestionSetRepository(tx).Save(ctx, set)
	})
}
