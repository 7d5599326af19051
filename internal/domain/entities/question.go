package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is returned when a question's answers are not a list of strings.
var ErrInvalidInput = errors.New("ysquiz: answers must be array")

// Answer holds the correct answer(s) of a question.
// A single value means a single-choice question, a list means multiple-choice.
type Answer struct {
	Values   []string // correct answers in the order given
	Multiple bool     // true when the answer was given as a list
}

// Single returns a single-choice answer.
func Single(value string) Answer {
	return Answer{Values: []string{value}}
}

// Multiple returns a multiple-choice answer.
func Multiple(values ...string) Answer {
	return Answer{Values: values, Multiple: true}
}

// UnmarshalJSON accepts either a string or a list of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("%w: correct answer is null", ErrInvalidInput)
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Single(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil || list == nil {
		return fmt.Errorf("%w: correct answer must be a string or a list of strings", ErrInvalidInput)
	}

	*a = Multiple(list...)
	return nil
}

// MarshalJSON writes the answer back in the shape it was read.
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Multiple && len(a.Values) == 1 {
		return json.Marshal(a.Values[0])
	}
	return json.Marshal(a.Values)
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars. Nulls are
// rejected, as in JSON.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.ShortTag() == nullTag:
		return fmt.Errorf("%w: correct answer is null (line %d)", ErrInvalidInput, node.Line)
	case node.Kind == yaml.ScalarNode:
		*a = Single(node.Value)
		return nil
	case node.Kind == yaml.SequenceNode:
		values, err := decodeStrings(node)
		if err != nil {
			return err
		}
		*a = Multiple(values...)
		return nil
	default:
		return fmt.Errorf("%w: correct answer must be a string or a list of strings (line %d)", ErrInvalidInput, node.Line)
	}
}

// QuestionSpec is a question as supplied by the caller, before its answers are shuffled.
type QuestionSpec struct {
	Prompt      string   `json:"question" yaml:"question"`
	Distractors []string `json:"answers" yaml:"answers"`
	Correct     Answer   `json:"correct" yaml:"correct"`
}

// UnmarshalJSON rejects specs whose answers are missing or not a list.
func (q *QuestionSpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Prompt  string          `json:"question"`
		Answers json.RawMessage `json:"answers"`
		Correct json.RawMessage `json:"correct"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	distractors := make([]string, 0)
	if len(raw.Answers) == 0 || json.Unmarshal(raw.Answers, &distractors) != nil || distractors == nil {
		return fmt.Errorf("%w: question %q", ErrInvalidInput, raw.Prompt)
	}

	if len(raw.Correct) == 0 {
		return fmt.Errorf("%w: question %q has no correct answer", ErrInvalidInput, raw.Prompt)
	}

	var correct Answer
	if err := correct.UnmarshalJSON(raw.Correct); err != nil {
		return fmt.Errorf("question %q: %w", raw.Prompt, err)
	}

	*q = QuestionSpec{Prompt: raw.Prompt, Distractors: distractors, Correct: correct}
	return nil
}

// UnmarshalYAML rejects specs whose answers are missing or not a sequence.
func (q *QuestionSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: question must be a mapping (line %d)", ErrInvalidInput, node.Line)
	}

	var (
		spec       QuestionSpec
		hasAnswers bool
		hasCorrect bool
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "question":
			spec.Prompt = value.Value
		case "answers":
			if value.Kind != yaml.SequenceNode {
				return fmt.Errorf("%w: answers of question at line %d", ErrInvalidInput, value.Line)
			}
			values, err := decodeStrings(value)
			if err != nil {
				return err
			}
			spec.Distractors = values
			hasAnswers = true
		case "correct":
			if err := spec.Correct.UnmarshalYAML(value); err != nil {
				return err
			}
			hasCorrect = true
		default:
			return fmt.Errorf("unknown question field %q (line %d)", key.Value, key.Line)
		}
	}

	if !hasAnswers {
		return fmt.Errorf("%w: question %q has no answers", ErrInvalidInput, spec.Prompt)
	}
	if !hasCorrect {
		return fmt.Errorf("%w: question %q has no correct answer", ErrInvalidInput, spec.Prompt)
	}

	*q = spec
	return nil
}

const nullTag = "!!null"

func decodeStrings(node *yaml.Node) ([]string, error) {
	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() == nullTag {
			return nil, fmt.Errorf("%w: list item at line %d is not a string", ErrInvalidInput, item.Line)
		}
		values = append(values, item.Value)
	}
	return values, nil
}

// QuestionSet is a named, titled list of questions.
// Name is derived from the file name or the question bank key.
type QuestionSet struct {
	Name      string         `json:"-" yaml:"-"`
	Title     string         `json:"title" yaml:"title"`
	Questions []QuestionSpec `json:"questions" yaml:"questions"`
}
