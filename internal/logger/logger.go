package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/config"
)

// New returns a production logger for the production environment and a
// development logger everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// Must is New for main packages: it falls back to a no-op logger on error.
func Must(cfg *config.Config) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// NewFile is New writing to path instead of stderr, for binaries that own the terminal.
func NewFile(cfg *config.Config, path string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}

	return zcfg.Build()
}
