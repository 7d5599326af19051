package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

const chatSelectorPrefix = "chat:"

type chatLookup interface {
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

// chatScreen is a quiz drawn as one chat message that is edited in place.
type chatScreen struct {
	*quiz.Screen
	chatID    int64
	messageID int
}

func newChatScreen(chatID int64) *chatScreen {
	return &chatScreen{Screen: quiz.NewScreen(), chatID: chatID}
}

// chatHost embeds a quiz into a Telegram chat.
type chatHost struct {
	bot    chatLookup
	selfID int64
	screen *chatScreen
}

func newChatHost(bot chatLookup, selfID int64, screen *chatScreen) *chatHost {
	return &chatHost{bot: bot, selfID: selfID, screen: screen}
}

// Supports requires an authorized bot: getMe must have succeeded.
func (h *chatHost) Supports() error {
	if h.selfID == 0 {
		return fmt.Errorf("%w: bot identity unknown", quiz.ErrFeatureUnsupported)
	}
	return nil
}

func (h *chatHost) Resolve(selector string) (quiz.Container, error) {
	chatID, err := parseChatSelector(selector)
	if err != nil {
		return nil, err
	}

	if chatID != h.screen.chatID {
		return nil, fmt.Errorf("%w: quiz is bound to chat %d, not %d", quiz.ErrInvalidTarget, h.screen.chatID, chatID)
	}

	if _, err := h.bot.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: tgbotapi.ChatConfig{ChatID: chatID}}); err != nil {
		return nil, fmt.Errorf("%w: get chat %d: %w", quiz.ErrInvalidTarget, chatID, err)
	}

	return h.screen, nil
}

func chatSelector(chatID int64) string {
	return chatSelectorPrefix + strconv.FormatInt(chatID, 10)
}

func parseChatSelector(selector string) (int64, error) {
	raw, ok := strings.CutPrefix(selector, chatSelectorPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a chat selector", quiz.ErrInvalidTarget, selector)
	}

	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad chat id in %q", quiz.ErrInvalidTarget, selector)
	}

	return chatID, nil
}
