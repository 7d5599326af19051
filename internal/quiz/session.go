package quiz

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
)

// Outcome is the result of one activation of the advance control.
type Outcome int

const (
	// OutcomeIdle means there was nothing to advance: the session is not
	// initialized or has no questions.
	OutcomeIdle Outcome = iota
	// OutcomeNoSelection means nothing was checked; the select-an-answer message is shown.
	OutcomeNoSelection
	// OutcomeNext means the answer was tallied and the next question rendered.
	OutcomeNext
	// OutcomeFinished means the last answer was tallied; results are one activation away.
	OutcomeFinished
	// OutcomeResults means the results summary was rendered.
	OutcomeResults
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoSelection:
		return "no_selection"
	case OutcomeNext:
		return "next"
	case OutcomeFinished:
		return "finished"
	case OutcomeResults:
		return "results"
	default:
		return "idle"
	}
}

// Stats is a snapshot of a session's progress.
type Stats struct {
	Total    int
	Position int
	Correct  int
	Wrong    int
	Finished bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for session events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRand sets the random source used to shuffle answers.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// Session drives one quiz: it renders the current question, grades answers
// on every advance and shows the results at the end.
// A Session is not safe for concurrent use.
type Session struct {
	host   Host
	logger *zap.Logger
	rng    *rand.Rand

	cfg       *Config // nil until Init succeeds
	container Container
	questions []*Question
	position  int
	finished  bool
	correct   int
	wrong     int
}

// NewSession creates an uninitialized session embedded in host.
func NewSession(host Host, opts ...Option) *Session {
	s := &Session{
		host:   host,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init tears down any previous quiz, resolves the container, adds the questions
// and renders the first one. On failure the session stays uninitialized.
func (s *Session) Init(questions []entities.QuestionSpec, cfg Config) error {
	if err := s.host.Supports(); err != nil {
		return classify(err, ErrFeatureUnsupported)
	}

	s.Teardown()

	cfg = cfg.withDefaults()

	container := cfg.Container
	if container == nil {
		resolved, err := s.host.Resolve(cfg.Host)
		if err != nil {
			return classify(err, ErrInvalidTarget)
		}
		container = resolved
	}
	if container == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, cfg.Host)
	}

	built := make([]*Question, 0, len(s.questions)+len(questions))
	built = append(built, s.questions...)
	for i, spec := range questions {
		q, err := NewQuestionFromSpec(s.rng, spec)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		built = append(built, q)
	}

	s.cfg = &cfg
	s.container = container
	s.questions = built

	s.logger.Debug("quiz initialized",
		zap.String("host", cfg.Host),
		zap.String("title", cfg.Title),
		zap.Int("questions", len(built)),
	)

	s.Setup()
	return nil
}

// AddQuestion appends a question. Its answers are shuffled right away.
func (s *Session) AddQuestion(prompt string, distractors []string, correct entities.Answer) error {
	if s.finished {
		return ErrFinished
	}

	q, err := NewQuestion(s.rng, prompt, distractors, correct)
	if err != nil {
		return err
	}

	s.questions = append(s.questions, q)
	return nil
}

// Setup renders the quiz frame and the current question.
// It does nothing before Init or when there are no questions.
func (s *Session) Setup() {
	if s.cfg == nil || len(s.questions) == 0 {
		return
	}

	s.container.RenderChrome(Chrome{Title: s.cfg.Title})

	if s.finished {
		s.container.RenderResults(s.results())
		return
	}

	s.questions[s.position].Render(s.container, s.position+1, s.cfg.Enumerates())
}

// Advance handles one activation of the advance control.
func (s *Session) Advance() Outcome {
	if s.cfg == nil || len(s.questions) == 0 {
		return OutcomeIdle
	}

	if s.finished {
		s.container.RenderResults(s.results())
		return OutcomeResults
	}

	q := s.questions[s.position]
	q.Select(s.container.Checked())
	if len(q.selected) == 0 {
		s.container.SetMessage(MessageSelectAnswer)
		return OutcomeNoSelection
	}

	s.container.SetMessage("")

	isCorrect := q.IsCorrect()
	if isCorrect {
		s.correct++
	} else {
		s.wrong++
	}
	s.position++

	s.logger.Debug("question answered",
		zap.Int("question", s.position),
		zap.Bool("correct", isCorrect),
	)

	if s.position == len(s.questions) {
		s.finished = true
		s.container.SetAdvanceLabel(LabelShowResults)
		return OutcomeFinished
	}

	s.questions[s.position].Render(s.container, s.position+1, s.cfg.Enumerates())
	return OutcomeNext
}

// Teardown clears the container and resets the session. It is a no-op
// on a session that was never initialized.
func (s *Session) Teardown() {
	if s.cfg == nil {
		return
	}

	s.container.Clear()

	s.cfg = nil
	s.container = nil
	s.questions = nil
	s.position = 0
	s.finished = false
	s.correct = 0
	s.wrong = 0
}

// Initialized reports whether Init has succeeded since the last Teardown.
func (s *Session) Initialized() bool {
	return s.cfg != nil
}

// Config returns the active configuration. ok is false before Init.
func (s *Session) Config() (cfg Config, ok bool) {
	if s.cfg == nil {
		return Config{}, false
	}
	return *s.cfg, true
}

// Current returns the active question, or nil once the quiz is finished.
func (s *Session) Current() *Question {
	if s.position >= len(s.questions) {
		return nil
	}
	return s.questions[s.position]
}

// Stats returns the session's progress.
func (s *Session) Stats() Stats {
	return Stats{
		Total:    len(s.questions),
		Position: s.position,
		Correct:  s.correct,
		Wrong:    s.wrong,
		Finished: s.finished,
	}
}

func (s *Session) results() Results {
	return Results{
		Total:   len(s.questions),
		Correct: s.correct,
		Wrong:   s.wrong,
	}
}
