package quiz

import (
	"fmt"
	"strconv"
)

const (
	LabelNext           = "Next"
	LabelShowResults    = "Show Results"
	MessageSelectAnswer = "Please select an answer!"
)

// ControlKind is the kind of selectable control rendered for a choice.
type ControlKind string

const (
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
)

// Chrome is the quiz frame: a header with the title, a content region and a message region.
type Chrome struct {
	Title string
}

// Control is one selectable answer.
type Control struct {
	Position int         // index into the question's choices
	Label    string      // answer text
	Kind     ControlKind // radio for single-choice, checkbox for multiple-choice
	Group    string      // shared group name, e.g. "question1"
}

// QuestionView is everything a container needs to show one question.
type QuestionView struct {
	Ordinal      int    // 1-based question number
	Title        string // prompt, prefixed with the ordinal when enumeration is on
	Mode         Mode
	Controls     []Control
	AdvanceLabel string
}

// Results is the final summary shown after the quiz is finished.
type Results struct {
	Total   int
	Correct int
	Wrong   int
}

// Lines returns the summary rows in display order.
func (r Results) Lines() []string {
	return []string{
		fmt.Sprintf("%d question", r.Total),
		fmt.Sprintf("%d correct", r.Correct),
		fmt.Sprintf("%d wrong", r.Wrong),
	}
}

func groupName(ordinal int) string {
	return "question" + strconv.Itoa(ordinal)
}
