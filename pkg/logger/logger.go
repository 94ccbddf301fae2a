package logger

import (
	"bytes"
	"io"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Options configures the process-wide logger
type Options struct {
	Timezone    string
	Environment string
	Level       string
	Output      io.Writer
}

// leadingFields are written first, in this order, by the ordered writer
var leadingFields = []string{"time", "level", "scope", "message"}

// orderedJSONWriter rewrites each event so the leading fields come first and
// the remaining keys follow alphabetically
type orderedJSONWriter struct {
	output io.Writer
}

func (w *orderedJSONWriter) Write(p []byte) (int, error) {
	var event map[string]json.RawMessage
	if err := json.Unmarshal(p, &event); err != nil {
		return w.output.Write(p)
	}

	rest := make([]string, 0, len(event))
	for key := range event {
		rest = append(rest, key)
	}
	sort.Strings(rest)

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	emit := func(key string) {
		value, ok := event[key]
		if !ok {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		delete(event, key)
	}
	for _, key := range leadingFields {
		emit(key)
	}
	for _, key := range rest {
		emit(key)
	}
	buf.WriteString("}\n")

	if _, err := w.output.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(time.UTC)
	}
	log = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Init reconfigures the logger for the given environment. Production writes
// raw zerolog JSON; every other environment uses the ordered writer.
func Init(opts Options) {
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		loc = time.UTC
		log.Warn().Err(err).Str("timezone", opts.Timezone).Msg("Invalid timezone, using UTC")
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Environment != "prod" {
		out = &orderedJSONWriter{output: out}
	}

	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	log = zerolog.New(out).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &log

	log.Info().
		Str("timezone", loc.String()).
		Str("environment", opts.Environment).
		Str("level", level.String()).
		Msg("Logger configured")
}

// Debug returns a debug level log event
func Debug() *zerolog.Event { return log.Debug() }

// Info returns an info level log event
func Info() *zerolog.Event { return log.Info() }

// Warn returns a warning level log event
func Warn() *zerolog.Event { return log.Warn() }

// Error returns an error level log event
func Error() *zerolog.Event { return log.Error() }

// Fatal returns a fatal level log event
func Fatal() *zerolog.Event { return log.Fatal() }

// ScopedLogger is a logger carrying a "scope" field
type ScopedLogger struct {
	logger zerolog.Logger
}

// WithScope creates a scoped logger from the current process logger
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: log.With().Str("scope", scope).Logger(),
	}
}

func (s *ScopedLogger) Debug() *zerolog.Event { return s.logger.Debug() }
func (s *ScopedLogger) Info() *zerolog.Event  { return s.logger.Info() }
func (s *ScopedLogger) Warn() *zerolog.Event  { return s.logger.Warn() }
func (s *ScopedLogger) Error() *zerolog.Event { return s.logger.Error() }
func (s *ScopedLogger) Fatal() *zerolog.Event { return s.logger.Fatal() }
