package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
	"github.com/aliskhannn/ysquiz/internal/quiz"
	"github.com/aliskhannn/ysquiz/internal/repository"
	"github.com/aliskhannn/ysquiz/internal/service"
)

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

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

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
	h := NewHandler(zap.NewNop(), svc, quiz.DefaultHost)
	return h, h.Routes([]string{"*"}, false)
}

type client struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	return c.do(req)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) visitor(h *Handler) *visitor {
	c.t.Helper()
	if c.cookie == nil {
		c.t.Fatalf("expected session cookie")
	}
	v, ok := h.visitors.Get(c.cookie.Value)
	if !ok {
		c.t.Fatalf("expected visitor for cookie %q", c.cookie.Value)
	}
	return v
}

func correctForm(v *visitor) url.Values {
	q := v.session.Current()
	form := url.Values{}
	group := v.screen.Question().Controls[0].Group
	for _, pos := range q.CorrectPositions() {
		form.Add(group, strconv.Itoa(pos))
	}
	return form
}

func TestPageRendersFirstQuestion(t *testing.T) {
	_, router := newTestServer(t)
	c := &client{t: t, router: router}

	rec := c.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"<h1>Sample</h1>", "1. First letter?", `type="radio"`, `name="question1"`, ">Next</button>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got:\n%s", want, body)
		}
	}
	if c.cookie == nil {
		t.Fatalf("expected %s cookie to be set", sessionCookie)
	}
}

func TestNextWithoutChoiceShowsMessage(t *testing.T) {
	_, router := newTestServer(t)
	c := &client{t: t, router: router}
	c.get("/")

	rec := c.post("/next?fragment=1", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, quiz.MessageSelectAnswer) {
		t.Fatalf("expected select message, got:\n%s", body)
	}
	if !strings.Contains(body, "1. First letter?") {
		t.Fatalf("expected to stay on the first question, got:\n%s", body)
	}
}

func TestNextAdvancesAndRevealsResults(t *testing.T) {
	h, router := newTestServer(t)
	c := &client{t: t, router: router}
	c.get("/")

	rec := c.post("/next", correctForm(c.visitor(h)))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	body := c.get("/").Body.String()
	if !strings.Contains(body, "2. Pick the primes") || !strings.Contains(body, `type="checkbox"`) {
		t.Fatalf("expected second question with checkboxes, got:\n%s", body)
	}

	rec = c.post("/next?fragment=1", correctForm(c.visitor(h)))
	body = rec.Body.String()
	if !strings.Contains(body, ">"+quiz.LabelShowResults+"</button>") {
		t.Fatalf("expected show results label, got:\n%s", body)
	}
	if strings.Contains(body, "ysquiz-result") {
		t.Fatalf("expected results to stay hidden until requested")
	}

	body = c.post("/next?fragment=1", url.Values{}).Body.String()
	for _, want := range []string{"2 question", "2 correct", "0 wrong"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected results to contain %q, got:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<button") {
		t.Fatalf("expected advance control to be gone, got:\n%s", body)
	}
}

func TestResetStartsOver(t *testing.T) {
	h, router := newTestServer(t)
	c := &client{t: t, router: router}
	c.get("/")
	c.post("/next", correctForm(c.visitor(h)))

	rec := c.post("/reset", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	stats := c.visitor(h).session.Stats()
	if stats.Position != 0 || stats.Correct != 0 {
		t.Fatalf("expected fresh session, got %+v", stats)
	}
}

func TestUnsupportedClient(t *testing.T) {
	_, router := newTestServer(t)
	c := &client{t: t, router: router}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := c.do(req)

	if rec.Code != http.StatusNotAcceptable {
		t.Fatalf("expected 406, got %d", rec.Code)
	}
}

func TestUnknownSet(t *testing.T) {
	_, router := newTestServer(t)
	c := &client{t: t, router: router}

	rec := c.get("/?set=missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWidgetFragment(t *testing.T) {
	_, router := newTestServer(t)
	c := &client{t: t, router: router}

	body := c.get("/widget").Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("expected fragment without page chrome")
	}
	if !strings.Contains(body, `action="/next?fragment=1"`) {
		t.Fatalf("expected fragment form action, got:\n%s", body)
	}
}

func TestHealthz(t *testing.T) {
	_, router := newTestServer(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdleVisitorsAreEvicted(t *testing.T) {
	h, router := newTestServer(t)

	for i := 0; i < 1000; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		router.ServeHTTP(rec, req)
	}
	if h.visitors.Len() != 1000 {
		t.Fatalf("expected 1000 visitors, got %d", h.visitors.Len())
	}

	c := &client{t: t, router: router}
	c.get("/")

	if n := h.EvictIdle(time.Now().Add(-time.Hour)); n != 0 {
		t.Fatalf("expected recent visitors to stay, got %d evicted", n)
	}
	if n := h.EvictIdle(time.Now().Add(time.Second)); n != 1001 {
		t.Fatalf("expected 1001 evictions, got %d", n)
	}

	// An evicted visitor starts over on its next request.
	rec := c.get("/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "1. First letter?") {
		t.Fatalf("expected a fresh quiz, got %d:\n%s", rec.Code, rec.Body.String())
	}
}

func TestCORSCredentialsNeedExplicitOrigins(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name        string
		origins     []string
		credentials bool
		want        string
	}{
		{name: "wildcard refuses credentials", origins: []string{"*"}, credentials: true, want: ""},
		{name: "explicit origin allows credentials", origins: []string{"https://blog.example"}, credentials: true, want: "true"},
		{name: "credentials off", origins: []string{"https://blog.example"}, credentials: false, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := h.Routes(tt.origins, tt.credentials)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Origin", "https://blog.example")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.want {
				t.Fatalf("expected Allow-Credentials %q, got %q", tt.want, got)
			}
		})
	}
}
