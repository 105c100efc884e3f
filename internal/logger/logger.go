package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"kundenstopper/internal/config"
)

// Fields are extra key/value pairs attached to a log line.
type Fields map[string]any

// Logger writes one JSON object per line with level, msg and ts keys.
// It is safe for concurrent use; derived loggers share the writer.
type Logger struct {
	zl  zerolog.Logger
	w   io.Writer
	loc *time.Location
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// tsHook stamps every event in the configured zone.
type tsHook struct {
	loc *time.Location
}

func (h tsHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("ts", time.Now().In(h.loc).Format(time.RFC3339Nano))
}

// New creates a Logger writing to w with timestamps in loc.
func New(w io.Writer, loc *time.Location, level string) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	zl := zerolog.New(zerolog.SyncWriter(w)).
		Level(ParseLevel(level)).
		Hook(tsHook{loc: loc})
	return &Logger{zl: zl, w: w, loc: loc}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), w: io.Discard, loc: time.UTC}
}

// NewWriter builds the log destination: stdout, plus a rotating file when
// cfg.File is set.
func NewWriter(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return zerolog.MultiLevelWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
}

// Writer exposes the underlying destination, e.g. for request logs.
func (l *Logger) Writer() io.Writer {
	return l.w
}

// Location returns the time zone used for timestamps.
func (l *Logger) Location() *time.Location {
	return l.loc
}

// With returns a child logger that adds fields to every line.
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{
		zl:  l.zl.With().Fields(map[string]any(fields)).Logger(),
		w:   l.w,
		loc: l.loc,
	}
}

func (l *Logger) Debug(msg string, fields Fields) { send(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields Fields)  { send(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields Fields)  { send(l.zl.Warn(), msg, fields) }

// Error logs msg at error level with err under the "error" key.
func (l *Logger) Error(msg string, err error, fields Fields) {
	send(l.zl.Error().Err(err), msg, fields)
}

// send writes msg under "msg" rather than zerolog's default "message" key.
func send(e *zerolog.Event, msg string, fields Fields) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		e = e.Fields(map[string]any(fields))
	}
	e.Str("msg", msg).Send()
}
