package quiz

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
)

var (
	// ErrFeatureUnsupported is returned by Init when the host lacks a required capability.
	ErrFeatureUnsupported = errors.New("ysquiz: host does not support the required features")

	// ErrInvalidTarget is returned by Init when the configured host does not resolve to a container.
	ErrInvalidTarget = errors.New("ysquiz: please select a valid quiz wrapper")

	// ErrInvalidInput is returned when a question's answers are not a list.
	ErrInvalidInput = entities.ErrInvalidInput

	// ErrFinished is returned by AddQuestion once every question has been answered.
	ErrFinished = errors.New("ysquiz: quiz already finished")
)

// classify makes sure err matches sentinel under errors.Is.
func classify(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
