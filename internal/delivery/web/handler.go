package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/repository"
	"github.com/aliskhannn/ysquiz/internal/storage"
)

const sessionCookie = "ysquiz_sid"

type QuizService interface {
	Start(ctx context.Context, session *quiz.Session, name string, container quiz.Container) (*entities.QuestionSet, error)
	Sets(ctx context.Context) ([]string, error)
	DefaultSet() string
}

// visitor is one browser's quiz. mu serialises its events like a page's UI thread.
type visitor struct {
	mu      sync.Mutex
	session *quiz.Session
	screen  *quiz.Screen
	set     string
}

type Handler struct {
	logger      *zap.Logger
	quizService QuizService
	visitors    *storage.SessionStorage[string, *visitor]
	region      string
}

func NewHandler(logger *zap.Logger, quizService QuizService, region string) *Handler {
	return &Handler{
		logger:      logger,
		quizService: quizService,
		visitors:    storage.NewSessionStorage[string, *visitor](),
		region:      region,
	}
}

// page serves the full page, starting the requested set when it is not running yet.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.mu.Lock()
	defer v.mu.Unlock()

	set := r.URL.Query().Get("set")
	if !v.session.Initialized() || (set != "" && set != v.set) {
		if !h.start(w, r, v, set) {
			return
		}
	}

	sets, err := h.quizService.Sets(r.Context())
	if err != nil {
		h.logger.Error("failed to list question sets", zap.Error(err))
	}

	h.write(w, func(buf *bytes.Buffer) error {
		return renderPage(buf, pageView{
			Widget:  newWidgetView(v.screen, "/next"),
			Sets:    sets,
			Current: v.set,
		})
	})
}

// widget serves the quiz region alone, for pages that embed it.
func (h *Handler) widget(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.session.Initialized() {
		if !h.start(w, r, v, r.URL.Query().Get("set")) {
			return
		}
	}

	h.write(w, func(buf *bytes.Buffer) error {
		return renderWidget(buf, newWidgetView(v.screen, "/next?fragment=1"))
	})
}

// next is the advance control: it submits the checked controls.
func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	v := h.visitor(w, r)
	v.mu.Lock()
	defer v.mu.Unlock()

	if q := v.screen.Question(); q != nil && len(q.Controls) > 0 {
		v.screen.SetChecked(parsePositions(r.PostForm[q.Controls[0].Group]))
	}

	outcome := v.session.Advance()
	h.logger.Debug("advance",
		zap.String("set", v.set),
		zap.Stringer("outcome", outcome),
	)

	if r.URL.Query().Get("fragment") == "1" {
		h.write(w, func(buf *bytes.Buffer) error {
			return renderWidget(buf, newWidgetView(v.screen, "/next?fragment=1"))
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// reset tears the quiz down and starts it again.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	v := h.visitor(w, r)
	v.mu.Lock()
	defer v.mu.Unlock()

	v.session.Teardown()

	set := r.PostForm.Get("set")
	if set == "" {
		set = v.set
	}
	if !h.start(w, r, v, set) {
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request, v *visitor, set string) bool {
	// The host is bound to this request so the capability check sees its headers.
	v.session = quiz.NewSession(
		newRequestHost(r.Header.Get("Accept"), h.region, v.screen),
		quiz.WithLogger(h.logger),
	)

	started, err := h.quizService.Start(r.Context(), v.session, set, nil)
	if err != nil {
		h.logger.Error("failed to start quiz",
			zap.String("set", set),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(statusFor(err)), statusFor(err))
		return false
	}

	v.set = started.Name
	return true
}

func (h *Handler) visitor(w http.ResponseWriter, r *http.Request) *visitor {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}

	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	v, created := h.visitors.GetOrCreate(id, func() *visitor {
		screen := quiz.NewScreen()
		return &visitor{
			screen:  screen,
			session: quiz.NewSession(newRequestHost("", h.region, screen)),
		}
	})
	if created {
		h.logger.Debug("new visitor", zap.String("sid", id))
	}

	return v
}

// EvictIdle drops visitors whose last request came before cutoff.
func (h *Handler) EvictIdle(cutoff time.Time) int {
	return h.visitors.EvictIdle(cutoff)
}

func (h *Handler) write(w http.ResponseWriter, render func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.logger.Error("failed to render quiz", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quiz.ErrFeatureUnsupported):
		return http.StatusNotAcceptable
	case errors.Is(err, repository.ErrQuestionSetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parsePositions(values []string) []int {
	positions := make([]int, 0, len(values))
	for _, value := range values {
		pos, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}
