package debugger

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the debugger's diagnostic logger: structured output to
// stderr, fanned out to an optional trace file when traceFile is non-nil.
// The teacher has no structured logging of its own; this is sourced from
// the rest of the pack (Manu343726-cucaracha's use of slog-multi) rather
// than hand-rolled against plain log.Logger.
func NewLogger(level slog.Level, traceFile io.Writer) *slog.Logger {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if traceFile == nil {
		return slog.New(stderrHandler)
	}
	traceHandler := slog.NewJSONHandler(traceFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(slogmulti.Fanout(stderrHandler, traceHandler))
}
