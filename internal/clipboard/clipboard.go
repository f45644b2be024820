// Package clipboard copies text to the system clipboard.
//
// Copying is fire-and-forget: a failure is logged and otherwise ignored, and
// the caller carries on as if the copy had happened.
package clipboard

import (
	"errors"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (e.g. a headless Linux box without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard: not supported on this system")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// writeAll is a package-level variable to allow mocking in tests.
var writeAll = clipboard.WriteAll

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return writeAll(text)
}

// Copy writes text to w and reports whether it worked. Errors are logged at
// warn level, never returned.
func Copy(w Writer, text string, logger *slog.Logger) bool {
	if err := w.WriteAll(text); err != nil {
		logger.Warn("copy to clipboard failed",
			slog.Int("bytes", len(text)),
			slog.String("error", err.Error()),
		)
		return false
	}
	logger.Debug("copied to clipboard", slog.Int("bytes", len(text)))
	return true
}
