// Package codeclog wraps go.uber.org/zap for the structured logging
// of the streamcodec CLI: parse, determinize and encode failures, and
// the completion of an encode. The core packages do not log.
package codeclog

import "go.uber.org/zap"

// Logger is a thin façade over zap.SugaredLogger, kept narrow so
// callers depend on a handful of methods instead of all of zap.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a Logger backed by a production zap config (JSON lines
// to stderr, Info level), suitable for running as a CLI.
func New() (*Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{s: zl.Sugar()}, nil
}

// NewNop returns a Logger that discards everything, for tests and
// library callers that don't want log output.
func NewNop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

func (l *Logger) Debugw(msg string, kv ...any) { l.s.Debugw(msg, kv...) }
func (l *Logger) Infow(msg string, kv ...any)   { l.s.Infow(msg, kv...) }
func (l *Logger) Errorw(msg string, kv ...any)  { l.s.Errorw(msg, kv...) }

// Sync flushes any buffered log entries; callers should defer it from
// main.
func (l *Logger) Sync() error { return l.s.Sync() }
