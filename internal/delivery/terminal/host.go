package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// ttyHost embeds a quiz into the terminal the program runs in.
type ttyHost struct {
	out    io.Writer
	region string
	screen *quiz.Screen
}

// NewHost returns a host that draws into screen when out is a terminal.
func NewHost(out io.Writer, region string, screen *quiz.Screen) quiz.Host {
	return &ttyHost{out: out, region: region, screen: screen}
}

// Supports requires an interactive terminal on out.
func (h *ttyHost) Supports() error {
	if !isTerminal(h.out) {
		return fmt.Errorf("%w: output is not a terminal", quiz.ErrFeatureUnsupported)
	}
	return nil
}

func (h *ttyHost) Resolve(selector string) (quiz.Container, error) {
	if selector != h.region {
		return nil, fmt.Errorf("%w: terminal has no region %q", quiz.ErrInvalidTarget, selector)
	}
	return h.screen, nil
}

// defaultIsTerminal inspects the writer for TTY support.
func defaultIsTerminal(out io.Writer) bool {
	if out == nil {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := out.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
