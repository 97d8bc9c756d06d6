// Package logger sets up the default slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/andrew-torda/pdbstruct/internal/config"
	"github.com/andrew-torda/pdbstruct/internal/errcode"
	"github.com/gnames/gn"
)

// Init makes slog write where cfg says: stderr, stdout or a file name.
// Log files are appended to. The returned function closes the file, if
// there is one.
func Init(cfg config.LogConfig) (func() error, error) {
	var writer io.Writer
	closer := func() error { return nil }
	switch cfg.Destination {
	case "", "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		fp, err := os.OpenFile(cfg.Destination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return closer, CreateLogFileError(cfg.Destination, err)
		}
		writer, closer = fp, fp.Close
	}
	slog.SetDefault(slog.New(NewHandler(writer, cfg)))
	return closer, nil
}

// NewHandler gives a json or text handler, text unless asked for json
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts string level to slog.Level. Unknown levels are info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func CreateLogFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot create log file: %w", fn.Name(), err),
	}
}
