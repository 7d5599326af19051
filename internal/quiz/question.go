package quiz

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
)

// Mode is the selection mode of a question.
type Mode int

const (
	ModeSingle Mode = iota
	ModeMultiple
)

func (m Mode) String() string {
	if m == ModeMultiple {
		return "multiple"
	}
	return "single"
}

// Question is one quiz question with its answers already shuffled.
type Question struct {
	Prompt  string
	Choices []string
	Mode    Mode

	correct  []int // positions in Choices holding a correct answer, sorted
	selected []int // positions the user checked, sorted
}

// NewQuestion inserts every correct answer at a random position among the distractors
// and remembers where each one landed. A nil distractors slice is rejected with ErrInvalidInput.
func NewQuestion(rng *rand.Rand, prompt string, distractors []string, correct entities.Answer) (*Question, error) {
	if distractors == nil {
		return nil, fmt.Errorf("%w: question %q", ErrInvalidInput, prompt)
	}

	mode := ModeSingle
	if correct.Multiple {
		mode = ModeMultiple
	}

	q := &Question{
		Prompt:  prompt,
		Choices: slices.Clone(distractors),
		Mode:    mode,
		correct: make([]int, 0, len(correct.Values)),
	}

	for _, answer := range correct.Values {
		idx := intn(rng, len(q.Choices)+1) // inserting at the end is allowed
		q.Choices = slices.Insert(q.Choices, idx, answer)

		// Earlier correct answers at or after idx moved one slot right.
		for i, pos := range q.correct {
			if pos >= idx {
				q.correct[i] = pos + 1
			}
		}
		q.correct = append(q.correct, idx)
	}
	slices.Sort(q.correct)

	return q, nil
}

// NewQuestionFromSpec builds a question from a caller supplied spec.
func NewQuestionFromSpec(rng *rand.Rand, spec entities.QuestionSpec) (*Question, error) {
	return NewQuestion(rng, spec.Prompt, spec.Distractors, spec.Correct)
}

// CorrectPositions returns the positions of the correct answers.
func (q *Question) CorrectPositions() []int {
	return slices.Clone(q.correct)
}

// Selected returns the positions the user checked.
func (q *Question) Selected() []int {
	return slices.Clone(q.selected)
}

// Select records the checked positions. Duplicates and out of range positions are dropped.
func (q *Question) Select(positions []int) {
	selected := make([]int, 0, len(positions))
	for _, pos := range positions {
		if pos >= 0 && pos < len(q.Choices) {
			selected = append(selected, pos)
		}
	}
	slices.Sort(selected)
	q.selected = slices.Compact(selected)
}

// IsCorrect reports whether at least one selected position holds a correct answer.
// Over- or partial selection on a multiple-choice question still counts.
func (q *Question) IsCorrect() bool {
	for _, pos := range q.selected {
		if _, found := slices.BinarySearch(q.correct, pos); found {
			return true
		}
	}
	return false
}

// View builds the rendering of the question as question number ordinal.
func (q *Question) View(ordinal int, enumerate bool) QuestionView {
	title := q.Prompt
	if enumerate {
		title = fmt.Sprintf("%d. %s", ordinal, q.Prompt)
	}

	kind := ControlRadio
	if q.Mode == ModeMultiple {
		kind = ControlCheckbox
	}

	group := groupName(ordinal)
	controls := make([]Control, len(q.Choices))
	for i, choice := range q.Choices {
		controls[i] = Control{
			Position: i,
			Label:    choice,
			Kind:     kind,
			Group:    group,
		}
	}

	return QuestionView{
		Ordinal:      ordinal,
		Title:        title,
		Mode:         q.Mode,
		Controls:     controls,
		AdvanceLabel: LabelNext,
	}
}

// Render replaces whatever question the container shows with this one.
func (q *Question) Render(c Container, ordinal int, enumerate bool) {
	c.RenderQuestion(q.View(ordinal, enumerate))
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
