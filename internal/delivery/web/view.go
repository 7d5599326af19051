package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type controlView struct {
	quiz.Control
	Checked bool
}

type widgetView struct {
	Title        string
	Question     *quiz.QuestionView
	Controls     []controlView
	Results      *quiz.Results
	Message      string
	AdvanceLabel string
	Action       string
}

type pageView struct {
	Widget  widgetView
	Sets    []string
	Current string
}

func newWidgetView(screen *quiz.Screen, action string) widgetView {
	v := widgetView{
		Title:        screen.Chrome().Title,
		Question:     screen.Question(),
		Results:      screen.Results(),
		Message:      screen.Message(),
		AdvanceLabel: screen.AdvanceLabel(),
		Action:       action,
	}

	if v.Question != nil {
		v.Controls = make([]controlView, len(v.Question.Controls))
		for i, c := range v.Question.Controls {
			v.Controls[i] = controlView{Control: c, Checked: screen.IsChecked(c.Position)}
		}
	}

	return v
}

func renderPage(w io.Writer, v pageView) error {
	return templates.ExecuteTemplate(w, "page.html", v)
}

func renderWidget(w io.Writer, v widgetView) error {
	return templates.ExecuteTemplate(w, "widget", v)
}
