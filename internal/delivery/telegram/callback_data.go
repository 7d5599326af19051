package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizToggle  = "toggle"
	quizNext    = "next"
	quizRestart = "restart"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizToggleCallback builds callback data for checking or unchecking a choice.
func buildQuizToggleCallback(position int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizToggle, strconv.Itoa(position)},
	}.encode()
}

// buildQuizNextCallback builds callback data for the advance button.
func buildQuizNextCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNext},
	}.encode()
}

// buildQuizRestartCallback builds callback data for starting the same set again.
func buildQuizRestartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizRestart},
	}.encode()
}

// subAction returns the first parameter, or "" when there is none.
func (cd callbackData) subAction() string {
	if len(cd.Params) == 0 {
		return ""
	}
	return cd.Params[0]
}

// position parses the choice position of a toggle callback.
func (cd callbackData) position() (int, bool) {
	if len(cd.Params) != 2 {
		return 0, false
	}
	pos, err := strconv.Atoi(cd.Params[1])
	if err != nil || pos < 0 {
		return 0, false
	}
	return pos, true
}
