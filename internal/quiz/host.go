package quiz

import "slices"

// Host is the environment a quiz is embedded in.
type Host interface {
	// Supports reports whether the host has everything the quiz needs.
	Supports() error
	// Resolve returns the container a selector points to.
	Resolve(selector string) (Container, error)
}

// Container is the region a quiz renders into.
type Container interface {
	RenderChrome(c Chrome)
	RenderQuestion(v QuestionView)
	RenderResults(r Results)
	SetAdvanceLabel(label string)
	SetMessage(msg string)
	// Checked returns the positions of the currently checked controls.
	Checked() []int
	Clear()
}

// Screen is an in-memory Container. Hosts keep one per quiz and paint it
// after every event.
type Screen struct {
	chrome   Chrome
	question *QuestionView
	results  *Results
	message  string
	label    string
	checked  []bool
	mounted  bool
}

// NewScreen creates an empty screen.
func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) RenderChrome(c Chrome) {
	s.chrome = c
	s.question = nil
	s.results = nil
	s.message = ""
	s.label = ""
	s.checked = nil
	s.mounted = true
}

func (s *Screen) RenderQuestion(v QuestionView) {
	v.Controls = slices.Clone(v.Controls)
	s.question = &v
	s.results = nil
	s.label = v.AdvanceLabel
	s.checked = make([]bool, len(v.Controls))
}

// RenderResults replaces the content region, advance control included.
func (s *Screen) RenderResults(r Results) {
	s.results = &r
	s.question = nil
	s.label = ""
	s.checked = nil
}

func (s *Screen) SetAdvanceLabel(label string) { s.label = label }

func (s *Screen) SetMessage(msg string) { s.message = msg }

func (s *Screen) Checked() []int {
	var out []int
	for pos, ok := range s.checked {
		if ok {
			out = append(out, pos)
		}
	}
	return out
}

func (s *Screen) Clear() {
	*s = Screen{}
}

// Toggle activates the control at pos. A radio control becomes the only
// checked one; a checkbox flips. It reports whether pos was a valid control.
func (s *Screen) Toggle(pos int) bool {
	if s.question == nil || pos < 0 || pos >= len(s.checked) {
		return false
	}

	if s.question.Mode == ModeSingle {
		for i := range s.checked {
			s.checked[i] = i == pos
		}
		return true
	}

	s.checked[pos] = !s.checked[pos]
	return true
}

// SetChecked replaces the selection, as a submitted form does.
// Out of range positions are ignored, and a single-choice question keeps only the last one.
func (s *Screen) SetChecked(positions []int) {
	if s.question == nil {
		return
	}

	for i := range s.checked {
		s.checked[i] = false
	}
	for _, pos := range positions {
		if pos < 0 || pos >= len(s.checked) {
			continue
		}
		if s.question.Mode == ModeSingle {
			for i := range s.checked {
				s.checked[i] = false
			}
		}
		s.checked[pos] = true
	}
}

// IsChecked reports whether the control at pos is checked.
func (s *Screen) IsChecked(pos int) bool {
	return pos >= 0 && pos < len(s.checked) && s.checked[pos]
}

func (s *Screen) Mounted() bool { return s.mounted }
func (s *Screen) Chrome() Chrome { return s.chrome }
func (s *Screen) Question() *QuestionView { return s.question }
func (s *Screen) Results() *Results { return s.results }
func (s *Screen) Message() string { return s.message }
func (s *Screen) AdvanceLabel() string { return s.label }
