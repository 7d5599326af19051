package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/repository"
)

// commandFunc runs one bot command in a chat.
type commandFunc func(ctx context.Context, chatID int64) error

// setError is a failure to start a quiz from the named question set.
type setError struct {
	set string
	err error
}

func (e *setError) Error() string { return fmt.Sprintf("start quiz %q: %v", e.set, e.err) }

func (e *setError) Unwrap() error { return e.err }

// withReplies answers a failed command in the chat it came from. Known quiz
// failures get their own message, everything else is logged.
func (h *Handler) withReplies(fn commandFunc) func(ctx context.Context, chatID int64) {
	return func(ctx context.Context, chatID int64) {
		if err := fn(ctx, chatID); err != nil {
			h.replyError(ctx, chatID, err)
		}
	}
}

func (h *Handler) replyError(ctx context.Context, chatID int64, err error) {
	var se *setError

	switch {
	case errors.As(err, &se) && errors.Is(err, repository.ErrQuestionSetNotFound):
		sets, listErr := h.quizService.Sets(ctx)
		if listErr != nil {
			h.logger.Error("failed to list question sets", zap.Error(listErr))
		}
		h.send(newMessage(chatID, unknownSetMarkdownV2(se.set, sets)))

	case errors.Is(err, quiz.ErrFeatureUnsupported), errors.Is(err, quiz.ErrInvalidTarget):
		h.logger.Warn("quiz cannot be embedded in chat",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgUnsupported)

	default:
		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
	}
}
