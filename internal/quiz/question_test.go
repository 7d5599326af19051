package quiz

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
)

func TestNewQuestionSingleChoice(t *testing.T) {
	q, err := NewQuestion(rand.New(rand.NewSource(1)), "First letter?", []string{"B", "C", "D"}, entities.Single("A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode != ModeSingle {
		t.Fatalf("expected single mode, got %s", q.Mode)
	}
	if len(q.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(q.Choices))
	}
	positions := q.CorrectPositions()
	if len(positions) != 1 {
		t.Fatalf("expected one correct position, got %v", positions)
	}
	if q.Choices[positions[0]] != "A" {
		t.Fatalf("expected A at position %d, got %q", positions[0], q.Choices[positions[0]])
	}
}

func TestNewQuestionDoesNotModifyDistractors(t *testing.T) {
	distractors := []string{"B", "C"}
	if _, err := NewQuestion(nil, "q", distractors, entities.Single("A")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(distractors, []string{"B", "C"}) {
		t.Fatalf("distractors were modified: %v", distractors)
	}
}

func TestNewQuestionRejectsNilDistractors(t *testing.T) {
	_, err := NewQuestion(nil, "q", nil, entities.Single("A"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewQuestionEmptyDistractors(t *testing.T) {
	q, err := NewQuestion(nil, "q", []string{}, entities.Single("A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(q.Choices, []string{"A"}) || !slices.Equal(q.CorrectPositions(), []int{0}) {
		t.Fatalf("unexpected question: choices=%v correct=%v", q.Choices, q.CorrectPositions())
	}
}

// TestCorrectPositionsHoldCorrectAnswers checks every recorded position after
// all insertions, across many seeds and answer counts.
func TestCorrectPositionsHoldCorrectAnswers(t *testing.T) {
	distractors := []string{"d1", "d2", "d3", "d4"}
	for count := 1; count <= 5; count++ {
		correct := make([]string, count)
		for i := range correct {
			correct[i] = "c" + string(rune('1'+i))
		}
		for seed := int64(0); seed < 200; seed++ {
			q, err := NewQuestion(rand.New(rand.NewSource(seed)), "q", distractors, entities.Multiple(correct...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(q.Choices) != len(distractors)+count {
				t.Fatalf("expected %d choices, got %d", len(distractors)+count, len(q.Choices))
			}
			positions := q.CorrectPositions()
			if len(positions) != count {
				t.Fatalf("seed %d: expected %d positions, got %v", seed, count, positions)
			}
			seen := map[string]bool{}
			for _, pos := range positions {
				if pos < 0 || pos >= len(q.Choices) {
					t.Fatalf("seed %d: position %d out of range", seed, pos)
				}
				if !slices.Contains(correct, q.Choices[pos]) {
					t.Fatalf("seed %d: position %d holds %q, choices %v", seed, pos, q.Choices[pos], q.Choices)
				}
				seen[q.Choices[pos]] = true
			}
			if len(seen) != count {
				t.Fatalf("seed %d: expected %d distinct correct answers, got %v", seed, count, seen)
			}
		}
	}
}

func TestIsCorrectAnySelectedPolicy(t *testing.T) {
	q, err := NewQuestion(rand.New(rand.NewSource(7)), "q", []string{"B", "C"}, entities.Multiple("A", "D"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Mode != ModeMultiple || len(q.Choices) != 4 {
		t.Fatalf("unexpected question: mode=%s choices=%v", q.Mode, q.Choices)
	}
	correct := q.CorrectPositions()
	var wrong []int
	for i := range q.Choices {
		if !slices.Contains(correct, i) {
			wrong = append(wrong, i)
		}
	}

	tests := []struct {
		name     string
		selected []int
		want     bool
	}{
		{name: "nothing", selected: nil, want: false},
		{name: "one of two correct", selected: correct[:1], want: true},
		{name: "all correct", selected: correct, want: true},
		{name: "only wrong", selected: wrong, want: false},
		{name: "everything", selected: []int{0, 1, 2, 3}, want: true},
		{name: "out of range", selected: []int{-1, 10}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q.Select(tc.selected)
			if got := q.IsCorrect(); got != tc.want {
				t.Fatalf("expected %v, got %v (selected %v, correct %v)", tc.want, got, tc.selected, correct)
			}
		})
	}
}

func TestSelectDropsDuplicates(t *testing.T) {
	q, _ := NewQuestion(nil, "q", []string{"B", "C"}, entities.Single("A"))
	q.Select([]int{2, 0, 2, 5})
	if got := q.Selected(); !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("expected [0 2], got %v", got)
	}
}

func TestQuestionView(t *testing.T) {
	q, _ := NewQuestion(nil, "Pick primes", []string{"4"}, entities.Multiple("2", "3"))

	v := q.View(3, true)
	if v.Title != "3. Pick primes" {
		t.Fatalf("unexpected title %q", v.Title)
	}
	if v.AdvanceLabel != LabelNext {
		t.Fatalf("unexpected advance label %q", v.AdvanceLabel)
	}
	if len(v.Controls) != 3 {
		t.Fatalf("expected 3 controls, got %d", len(v.Controls))
	}
	for i, c := range v.Controls {
		if c.Kind != ControlCheckbox || c.Group != "question3" || c.Position != i || c.Label != q.Choices[i] {
			t.Fatalf("unexpected control %d: %+v", i, c)
		}
	}

	if got := q.View(3, false).Title; got != "Pick primes" {
		t.Fatalf("expected plain prompt, got %q", got)
	}

	single, _ := NewQuestion(nil, "q", []string{"B"}, entities.Single("A"))
	if kind := single.View(1, true).Controls[0].Kind; kind != ControlRadio {
		t.Fatalf("expected radio controls, got %s", kind)
	}
}
