package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

const labelRestart = "🔄 Restart"

// controlMark returns the glyph drawn in front of a choice.
func controlMark(kind quiz.ControlKind, checked bool) string {
	switch {
	case kind == quiz.ControlCheckbox && checked:
		return "☑️"
	case kind == quiz.ControlCheckbox:
		return "⬜"
	case checked:
		return "🔘"
	default:
		return "⚪"
	}
}

// buildQuizKeyboard builds the keyboard for the screen: one toggle per choice,
// then the advance button while it is shown, or a restart button under the results.
func buildQuizKeyboard(screen *quiz.Screen) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if q := screen.Question(); q != nil {
		for _, c := range q.Controls {
			label := controlMark(c.Kind, screen.IsChecked(c.Position)) + " " + c.Label
			button := tgbotapi.NewInlineKeyboardButtonData(label, buildQuizToggleCallback(c.Position))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
		}
	}

	if label := screen.AdvanceLabel(); label != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label+" ▶️", buildQuizNextCallback()),
		))
	}

	if screen.Results() != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelRestart, buildQuizRestartCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BotCommands lists the commands shown in the Telegram menu.
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a quiz (usage: /quiz capitals)"},
		{Command: "reset", Description: "Drop the current quiz"},
		{Command: "help", Description: "Help"},
	}
}
