package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/storage"
)

// chatQuiz is the quiz running in one chat.
type chatQuiz struct {
	session *quiz.Session
	screen  *chatScreen
	set     string
}

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	quizService QuizService
	quizzes     *storage.SessionStorage[int64, *chatQuiz]
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		quizzes:     storage.NewSessionStorage[int64, *chatQuiz](),
	}
}

// Run consumes updates until ctx is cancelled. Updates are handled one at a
// time, so a chat's quiz never sees two events at once.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMarkdownV2()))
		h.withReplies(h.handleQuiz(""))(ctx, chatID)

	case "quiz":
		h.withReplies(h.handleQuiz(update.Message.CommandArguments()))(ctx, chatID)

	case "reset":
		h.withReplies(h.handleReset())(ctx, chatID)

	case "help":
		h.withReplies(h.handleHelp())(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// handleQuiz replaces the chat's quiz with a fresh one from the named set.
func (h *Handler) handleQuiz(args string) commandFunc {
	return func(ctx context.Context, chatID int64) error {
		if old, ok := h.quizzes.Get(chatID); ok {
			h.dropQuiz(old)
		}

		set := strings.TrimSpace(args)
		cq := &chatQuiz{screen: newChatScreen(chatID)}
		if err := h.startQuiz(ctx, cq, set); err != nil {
			return &setError{set: set, err: err}
		}

		if cq.session.Stats().Total == 0 {
			return h.sendErr(newPlainMessage(chatID, fmt.Sprintf("Question set %q is empty.", cq.set)))
		}

		h.quizzes.Store(chatID, cq)
		return h.paint(cq)
	}
}

func (h *Handler) handleReset() commandFunc {
	return func(_ context.Context, chatID int64) error {
		cq, ok := h.quizzes.Get(chatID)
		if !ok {
			return h.sendErr(newPlainMessage(chatID, msgNoActiveQuiz))
		}

		h.dropQuiz(cq)
		return h.sendErr(newPlainMessage(chatID, msgQuizReset))
	}
}

func (h *Handler) handleHelp() commandFunc {
	return func(ctx context.Context, chatID int64) error {
		sets, err := h.quizService.Sets(ctx)
		if err != nil {
			return fmt.Errorf("list question sets: %w", err)
		}
		return h.sendErr(newMessage(chatID, helpMarkdownV2(sets, h.quizService.DefaultSet())))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)
	if data.Action != actionQuiz || cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	cq, ok := h.quizzes.Get(chatID)
	if !ok {
		h.answerCallback(cb.ID, msgNoActiveQuiz)
		return
	}
	if cq.screen.messageID != cb.Message.MessageID {
		h.answerCallback(cb.ID, msgStaleQuiz)
		return
	}

	toast := ""

	switch data.subAction() {
	case quizToggle:
		pos, ok := data.position()
		if !ok {
			h.logger.Warn("invalid toggle callback", zap.String("data", data.Raw))
			h.answerCallback(cb.ID, "")
			return
		}
		cq.screen.Toggle(pos)

	case quizNext:
		outcome := cq.session.Advance()
		h.logger.Debug("advance",
			zap.Int64("chat_id", chatID),
			zap.Stringer("outcome", outcome),
		)
		if outcome == quiz.OutcomeNoSelection {
			toast = quiz.MessageSelectAnswer
		}

	case quizRestart:
		cq.session.Teardown()
		if err := h.startQuiz(ctx, cq, cq.set); err != nil {
			h.logger.Error("failed to restart quiz",
				zap.Int64("chat_id", chatID),
				zap.String("set", cq.set),
				zap.Error(err),
			)
			h.answerCallback(cb.ID, msgInternalError)
			return
		}

	default:
		h.answerCallback(cb.ID, "")
		return
	}

	if err := h.paint(cq); err != nil {
		h.logger.Error("failed to paint quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// startQuiz initializes cq's session with a host bound to its chat.
func (h *Handler) startQuiz(ctx context.Context, cq *chatQuiz, set string) error {
	cq.session = quiz.NewSession(
		newChatHost(h.bot, h.bot.Self.ID, cq.screen),
		quiz.WithLogger(h.logger.With(zap.Int64("chat_id", cq.screen.chatID))),
	)

	started, err := h.quizService.StartAt(ctx, cq.session, set, chatSelector(cq.screen.chatID))
	if err != nil {
		return err
	}

	cq.set = started.Name
	return nil
}

// dropQuiz tears down a chat's quiz and removes its message.
func (h *Handler) dropQuiz(cq *chatQuiz) {
	cq.session.Teardown()
	h.quizzes.Delete(cq.screen.chatID)

	if cq.screen.messageID != 0 {
		deleteMsg := tgbotapi.NewDeleteMessage(cq.screen.chatID, cq.screen.messageID)
		if _, err := h.bot.Request(deleteMsg); err != nil {
			h.logger.Warn("failed to delete quiz message",
				zap.Int64("chat_id", cq.screen.chatID),
				zap.Error(err),
			)
		}
		cq.screen.messageID = 0
	}
}

// EvictIdle drops chat quizzes untouched since cutoff. Their messages stay in
// the chat; callbacks on them get the no-active-quiz answer.
func (h *Handler) EvictIdle(cutoff time.Time) int {
	return h.quizzes.EvictIdle(cutoff)
}

// paint sends the quiz message on first use and edits it afterwards.
func (h *Handler) paint(cq *chatQuiz) error {
	text := formatQuiz(cq.screen.Screen)
	kb := buildQuizKeyboard(cq.screen.Screen)

	if cq.screen.messageID == 0 {
		msg := newMessage(cq.screen.chatID, text)
		msg.ReplyMarkup = kb

		sent, err := h.bot.Send(msg)
		if err != nil {
			return fmt.Errorf("send quiz message: %w", err)
		}
		cq.screen.messageID = sent.MessageID
		return nil
	}

	edit := newEdit(cq.screen.chatID, cq.screen.messageID, text)
	edit.ReplyMarkup = &kb

	if _, err := h.bot.Send(edit); err != nil && !isNotModified(err) {
		return fmt.Errorf("edit quiz message: %w", err)
	}
	return nil
}

// isNotModified reports Telegram's refusal to apply an edit that changes nothing.
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func (h *Handler) sendErr(c tgbotapi.Chattable) error {
	_, err := h.bot.Send(c)
	return err
}
