package asynq

import (
	"fmt"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// Logger adapts the scoped zerolog logger to asynq.Logger
type Logger struct {
	log *logger.ScopedLogger
}

func NewLogger(scope string) *Logger {
	return &Logger{log: logger.WithScope(scope)}
}

func (l *Logger) Debug(args ...any) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l *Logger) Info(args ...any)  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l *Logger) Warn(args ...any)  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l *Logger) Error(args ...any) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l *Logger) Fatal(args ...any) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
