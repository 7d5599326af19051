// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

// Error and status messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgUnknownCommand = "Unknown command. Send /help to see what I can do."
	msgNoActiveQuiz   = "There is no active quiz. Send /quiz to start one."
	msgStaleQuiz      = "This quiz was replaced by a newer one."
	msgQuizReset      = "Quiz reset. Send /quiz to start again."
	msgUnsupported    = "Quizzes are not available in this chat."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the /start greeting.
func welcomeMarkdownV2() string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("Welcome to ysQuiz!"),
		md("Answer one question at a time, then press the button below the choices to move on. Send /help for all commands."),
	)
}

// helpMarkdownV2 lists the commands and the available question sets.
func helpMarkdownV2(sets []string, defaultSet string) string {
	var b strings.Builder
	b.WriteString(bold("Commands"))
	b.WriteString("\n\n")
	b.WriteString(md("/quiz [set] — start a quiz\n/reset — drop the current quiz\n/help — this message"))

	if len(sets) > 0 {
		b.WriteString("\n\n")
		b.WriteString(bold("Question sets"))
		b.WriteString("\n")
		for _, set := range sets {
			line := "• " + set
			if set == defaultSet {
				line += " (default)"
			}
			b.WriteString(md(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// unknownSetMarkdownV2 tells the user which set names are valid.
func unknownSetMarkdownV2(name string, sets []string) string {
	text := md(fmt.Sprintf("There is no question set %q.", name))
	if len(sets) > 0 {
		text += "\n" + md("Available: "+strings.Join(sets, ", "))
	}
	return text
}

// formatQuiz renders the screen's header, content and message regions.
func formatQuiz(screen *quiz.Screen) string {
	var b strings.Builder

	b.WriteString(bold(screen.Chrome().Title))

	switch {
	case screen.Results() != nil:
		b.WriteString("\n\n")
		b.WriteString(bold("Result:"))
		for _, line := range screen.Results().Lines() {
			b.WriteString("\n")
			b.WriteString(md(line))
		}
	case screen.Question() != nil:
		q := screen.Question()
		b.WriteString("\n\n")
		b.WriteString(bold(q.Title))
		if q.Mode == quiz.ModeMultiple {
			b.WriteString("\n")
			b.WriteString(italic("Select all that apply."))
		}
	}

	if msg := screen.Message(); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(md("⚠️ " + msg))
	}

	return b.String()
}
