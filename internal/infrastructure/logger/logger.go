package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

// ZeroLogger adapts a zerolog.Logger to the application logger interface.
type ZeroLogger struct {
	log zerolog.Logger
}

var _ usecasecontract.IAppLogger = (*ZeroLogger)(nil)

// NewLogger builds a JSON logger, or a console logger outside production.
func NewLogger(level, appEnv, instanceID string) *ZeroLogger {
	var out io.Writer = os.Stderr
	if !strings.EqualFold(appEnv, "production") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return newLogger(out, level, instanceID)
}

func newLogger(out io.Writer, level, instanceID string) *ZeroLogger {
	zerolog.TimeFieldFormat = time.RFC3339
	ctx := zerolog.New(out).Level(parseLevel(level)).With().Timestamp()
	if instanceID != "" {
		ctx = ctx.Str("instance", instanceID)
	}
	return &ZeroLogger{log: ctx.Logger()}
}

// Zerolog exposes the underlying logger for components that log structured fields.
func (l *ZeroLogger) Zerolog() zerolog.Logger {
	return l.log
}

func (l *ZeroLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *ZeroLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *ZeroLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *ZeroLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(fmt.Sprintf(format, args...))
}

// Fatalf logs and exits the process.
func (l *ZeroLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatal().Msg(fmt.Sprintf(format, args...))
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
