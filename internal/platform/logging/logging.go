package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "mapty/internal/platform/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the application logger. When path is set, output goes to that
// file (the terminal UI owns the screen); otherwise it goes to fallback.
func New(level, path string, fallback io.Writer) (hclog.Logger, io.Closer, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, nil, fmt.Errorf("%w: unsupported log level %q", apperrors.ErrInvalidInput, level)
	}
	out := fallback
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	if out == nil {
		out = io.Discard
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "mapty",
		Level:  lvl,
		Output: out,
	})
	return logger, closer, nil
}
