package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/infra/postgres"
	repo "github.com/aliskhannn/ysquiz/internal/repository"
)

// QuestionSetRepository provides access to the question bank in the database.
type QuestionSetRepository struct {
	db postgres.DBTX
}

// NewQuestionSetRepository creates a new QuestionSetRepository on a pool or a transaction.
func NewQuestionSetRepository(db postgres.DBTX) *QuestionSetRepository {
	return &QuestionSetRepository{db: db}
}

// GetByName loads a question set with its questions in order.
func (r *QuestionSetRepository) GetByName(ctx context.Context, name string) (*entities.QuestionSet, error) {
	set := entities.QuestionSet{Name: name}

	err := r.db.QueryRow(ctx, `SELECT title FROM question_sets WHERE name = $1`, name).Scan(&set.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repo.ErrQuestionSetNotFound, name)
		}
		return nil, fmt.Errorf("get question set: %w", err)
	}

	query := `
		SELECT prompt, distractors, correct, multiple
		FROM questions
		WHERE set_name = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			spec    entities.QuestionSpec
			correct []string
			multi   bool
		)
		if err := rows.Scan(&spec.Prompt, &spec.Distractors, &correct, &multi); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if spec.Distractors == nil {
			spec.Distractors = []string{}
		}
		spec.Correct = entities.Answer{Values: correct, Multiple: multi}
		set.Questions = append(set.Questions, spec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return &set, nil
}

// List returns the names of all question sets in alphabetical order.
func (r *QuestionSetRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM question_sets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list question sets: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect question sets: %w", err)
	}

	return names, nil
}

// Save replaces the question set and all of its questions.
// Run it within a transaction so readers never see a partial set.
func (r *QuestionSetRepository) Save(ctx context.Context, set *entities.QuestionSet) error {
	query := `
		INSERT INTO question_sets (name, title)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET title = EXCLUDED.title
	`
	if _, err := r.db.Exec(ctx, query, set.Name, set.Title); err != nil {
		return fmt.Errorf("upsert question set: %w", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM questions WHERE set_name = $1`, set.Name); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}

	insert := `
		INSERT INTO questions (set_name, position, prompt, distractors, correct, multiple)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, q := range set.Questions {
		_, err := r.db.Exec(ctx, insert,
			set.Name,
			i,
			q.Prompt,
			q.Distractors,
			q.Correct.Values,
			q.Correct.Multiple,
		)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	return nil
}
