package clipboard

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"data-agent/internal/answer"
)

// Confirmation is shown after the SQL lands on the clipboard.
const Confirmation = "SQL copied to clipboard"

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopySQL copies the response's SQL and calls notify with Confirmation.
// Nothing happens when there is no SQL. A failed write is logged at debug
// level and otherwise ignored: no confirmation, no error.
func CopySQL(w Writer, resp answer.Response, notify func(string), log *slog.Logger) {
	if resp.SQL == "" {
		return
	}
	if err := w.WriteAll(resp.SQL); err != nil {
		if log != nil {
			log.Debug("clipboard write failed", "err", err)
		}
		return
	}
	if notify != nil {
		notify(Confirmation)
	}
}
