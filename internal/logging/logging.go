// Package logging builds the application logger. The TUI owns the
// terminal, so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/lexiz/internal/config"
)

// New returns a logger writing to cfg.LogFile, or to DefaultPath when it
// is empty. Development mode logs at debug level with the console
// encoder; production logs JSON at info level.
func New(cfg *config.Config) (*zap.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.Sampling = nil
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.With(zap.String("env", cfg.Env)), nil
}

// DefaultPath returns $XDG_STATE_HOME/lexiz/lexiz.log, falling back to
// ~/.local/state/lexiz/lexiz.log.
func DefaultPath() (string, error) {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "lexiz", "lexiz.log"), nil
}
