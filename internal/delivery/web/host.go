package web

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/ysquiz/internal/quiz"
)

// requestHost embeds a quiz into the page served for one request.
// The page has a single quiz region, addressed by its selector.
type requestHost struct {
	accept string
	region string
	screen *quiz.Screen
}

func newRequestHost(accept, region string, screen *quiz.Screen) *requestHost {
	return &requestHost{accept: accept, region: region, screen: screen}
}

// Supports requires a client that renders HTML forms.
func (h *requestHost) Supports() error {
	if h.accept == "" {
		return nil
	}
	for _, part := range strings.Split(h.accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mediaType {
		case "text/html", "text/*", "*/*":
			return nil
		}
	}
	return fmt.Errorf("%w: client does not accept text/html (Accept: %s)", quiz.ErrFeatureUnsupported, h.accept)
}

func (h *requestHost) Resolve(selector string) (quiz.Container, error) {
	if selector != h.region {
		return nil, fmt.Errorf("%w: page has no element %q", quiz.ErrInvalidTarget, selector)
	}
	return h.screen, nil
}
