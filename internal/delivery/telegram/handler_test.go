package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/repository"
	"github.com/aliskhannn/ysquiz/internal/service"
)

const testChatID = 42

type memorySets map[string]*entities.QuestionSet

func (m memorySets) GetByName(_ context.Context, name string) (*entities.QuestionSet, error) {
	set, ok := m[name]
	if !ok {
		return nil, repository.ErrQuestionSetNotFound
	}
	return set, nil
}

func (m memorySets) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names, nil
}

type apiCall struct {
	method string
	form   url.Values
}

// botAPI is a Bot API server that records every call it gets.
type botAPI struct {
	mu      sync.Mutex
	calls   []apiCall
	nextID  int
	unknown map[int64]bool
}

func (b *botAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, apiCall{method: method, form: r.Form})

	chatID, _ := strconv.ParseInt(r.Form.Get("chat_id"), 10, 64)

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "getMe":
		fmt.Fprint(w, `{"ok":true,"result":{"id":1001,"is_bot":true,"first_name":"ysQuiz","username":"ysquiz_bot"}}`)
	case "getChat":
		if b.unknown[chatID] {
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
			return
		}
		fmt.Fprintf(w, `{"ok":true,"result":{"id":%d,"type":"private"}}`, chatID)
	case "sendMessage":
		b.nextID++
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":%d,"type":"private"}}}`, b.nextID, chatID)
	case "editMessageText":
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%s,"date":0,"chat":{"id":%d,"type":"private"}}}`, r.Form.Get("message_id"), chatID)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}

// take returns the calls recorded since the last take.
func (b *botAPI) take() []apiCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	calls := b.calls
	b.calls = nil
	return calls
}

func newTestHandler(t *testing.T) (*Handler, *botAPI) {
	t.Helper()

	api := &botAPI{nextID: 100, unknown: map[int64]bool{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	api.take()

	sets := memorySets{
		"sample": {
			Name:  "sample",
			Title: "Sample",
			Questions: []entities.QuestionSpec{
				{Prompt: "First letter?", Distractors: []string{"B", "C"}, Correct: entities.Single("A")},
				{Prompt: "Pick the primes", Distractors: []string{"4"}, Correct: entities.Multiple("2", "3")},
			},
		},
	}

	svc := service.NewQuizService(sets, quiz.DefaultConfig(), "sample")
	return NewHandler(bot, zap.NewNop(), svc), api
}

func command(chatID int64, text string) tgbotapi.Update {
	name, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func callback(messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}

func findCall(calls []apiCall, method string) (apiCall, bool) {
	for _, c := range calls {
		if c.method == method {
			return c, true
		}
	}
	return apiCall{}, false
}

func countCalls(calls []apiCall, method string) int {
	n := 0
	for _, c := range calls {
		if c.method == method {
			n++
		}
	}
	return n
}

func TestQuizCommandSendsThenCallbacksEdit(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.handleUpdate(ctx, command(testChatID, "/quiz"))

	calls := api.take()
	sent, ok := findCall(calls, "sendMessage")
	if !ok {
		t.Fatalf("expected sendMessage, got %+v", calls)
	}
	if !strings.Contains(sent.form.Get("text"), "First letter?") {
		t.Fatalf("expected first question in message, got %q", sent.form.Get("text"))
	}
	if !strings.Contains(sent.form.Get("reply_markup"), buildQuizToggleCallback(0)) {
		t.Fatalf("expected toggle buttons, got %q", sent.form.Get("reply_markup"))
	}

	cq, ok := h.quizzes.Get(testChatID)
	if !ok {
		t.Fatalf("expected a stored quiz for the chat")
	}
	msgID := cq.screen.messageID
	if msgID != 101 {
		t.Fatalf("expected message id 101, got %d", msgID)
	}

	h.handleUpdate(ctx, callback(msgID, buildQuizToggleCallback(0)))

	calls = api.take()
	if countCalls(calls, "sendMessage") != 0 {
		t.Fatalf("expected no new message after toggle, got %+v", calls)
	}
	edit, ok := findCall(calls, "editMessageText")
	if !ok || edit.form.Get("message_id") != strconv.Itoa(msgID) {
		t.Fatalf("expected edit of message %d, got %+v", msgID, calls)
	}
	if !cq.screen.IsChecked(0) {
		t.Fatalf("expected position 0 to be checked")
	}
}

func TestNextWithoutSelectionAnswersWithToast(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.handleUpdate(ctx, command(testChatID, "/quiz"))
	api.take()
	cq, _ := h.quizzes.Get(testChatID)

	h.handleUpdate(ctx, callback(cq.screen.messageID, buildQuizNextCallback()))

	calls := api.take()
	answer, ok := findCall(calls, "answerCallbackQuery")
	if !ok {
		t.Fatalf("expected answerCallbackQuery, got %+v", calls)
	}
	if got := answer.form.Get("text"); got != quiz.MessageSelectAnswer {
		t.Fatalf("expected toast %q, got %q", quiz.MessageSelectAnswer, got)
	}
	if got := cq.session.Stats().Total; got != 2 {
		t.Fatalf("expected quiz to stay on its questions, total %d", got)
	}
}

func TestCallbackOnReplacedMessageIsRefused(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.handleUpdate(ctx, command(testChatID, "/quiz"))
	api.take()
	cq, _ := h.quizzes.Get(testChatID)

	h.handleUpdate(ctx, callback(cq.screen.messageID-1, buildQuizToggleCallback(0)))

	calls := api.take()
	if countCalls(calls, "editMessageText") != 0 {
		t.Fatalf("expected stale callback to leave the message alone, got %+v", calls)
	}
	answer, ok := findCall(calls, "answerCallbackQuery")
	if !ok || answer.form.Get("text") != msgStaleQuiz {
		t.Fatalf("expected %q answer, got %+v", msgStaleQuiz, calls)
	}
	if cq.screen.IsChecked(0) {
		t.Fatalf("expected stale toggle to be ignored")
	}
}

func TestRestartReusesMessage(t *testing.T) {
	h, api := newTestHandler(t)
	ctx := context.Background()

	h.handleUpdate(ctx, command(testChatID, "/quiz"))
	api.take()
	cq, _ := h.quizzes.Get(testChatID)
	msgID := cq.screen.messageID

	// Answer both questions to reach the results.
	for i := 0; cq.screen.Results() == nil; i++ {
		if i == 3 {
			t.Fatalf("expected results after answering every question")
		}
		for _, pos := range cq.session.Current().CorrectPositions() {
			h.handleUpdate(ctx, callback(msgID, buildQuizToggleCallback(pos)))
		}
		h.handleUpdate(ctx, callback(msgID, buildQuizNextCallback()))
		h.handleUpdate(ctx, callback(msgID, buildQuizNextCallback()))
	}
	api.take()

	h.handleUpdate(ctx, callback(msgID, buildQuizRestartCallback()))

	calls := api.take()
	if countCalls(calls, "sendMessage") != 0 {
		t.Fatalf("expected restart to reuse the message, got %+v", calls)
	}
	edit, ok := findCall(calls, "editMessageText")
	if !ok || edit.form.Get("message_id") != strconv.Itoa(msgID) {
		t.Fatalf("expected edit of message %d, got %+v", msgID, calls)
	}
	if !strings.Contains(edit.form.Get("text"), "First letter?") {
		t.Fatalf("expected first question after restart, got %q", edit.form.Get("text"))
	}
	if cq.screen.messageID != msgID {
		t.Fatalf("expected message id %d, got %d", msgID, cq.screen.messageID)
	}
}

func TestCommandErrorsAreAnsweredInChat(t *testing.T) {
	h, api := newTestHandler(t)
	api.unknown[13] = true
	ctx := context.Background()

	h.handleUpdate(ctx, command(testChatID, "/quiz nope"))

	calls := api.take()
	sent, ok := findCall(calls, "sendMessage")
	if !ok || !strings.Contains(sent.form.Get("text"), "nope") || !strings.Contains(sent.form.Get("text"), "sample") {
		t.Fatalf("expected unknown set reply listing sets, got %+v", calls)
	}
	if _, ok := h.quizzes.Get(testChatID); ok {
		t.Fatalf("expected no quiz stored for unknown set")
	}

	h.handleUpdate(ctx, command(13, "/quiz"))

	calls = api.take()
	sent, ok = findCall(calls, "sendMessage")
	if !ok || sent.form.Get("text") != msgUnsupported {
		t.Fatalf("expected %q, got %+v", msgUnsupported, calls)
	}
}
