package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter adapts a logrus logger (or entry) to the library's Logger
// interface. Field maps pass through unchanged since logrus.Fields shares
// the map[string]any shape.
type LogrusAdapter struct {
	logger logrus.FieldLogger
}

// NewLogrusAdapter wraps an existing logrus logger for library use
func NewLogrusAdapter(logger logrus.FieldLogger) *LogrusAdapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusAdapter{logger: logger}
}

func (l *LogrusAdapter) entry(fields []Fields) logrus.FieldLogger {
	out := l.logger
	for _, f := range fields {
		out = out.WithFields(logrus.Fields(f))
	}
	return out
}

func (l *LogrusAdapter) Debug(msg string, fields ...Fields) {
	l.entry(fields).Debug(msg)
}

func (l *LogrusAdapter) Info(msg string, fields ...Fields) {
	l.entry(fields).Info(msg)
}

func (l *LogrusAdapter) Warn(msg string, fields ...Fields) {
	l.entry(fields).Warn(msg)
}

func (l *LogrusAdapter) Error(err error, msg string, fields ...Fields) {
	l.entry(fields).WithError(err).Error(msg)
}

func (l *LogrusAdapter) Fatal(err error, msg string, fields ...Fields) {
	l.entry(fields).WithError(err).Fatal(msg)
}

func (l *LogrusAdapter) WithFields(fields Fields) Logger {
	return &LogrusAdapter{logger: l.logger.WithFields(logrus.Fields(fields))}
}

func (l *LogrusAdapter) WithContext(ctx context.Context) Logger {
	// Extract fields from context if any
	if fields, ok := ctx.Value("logger_fields").(Fields); ok {
		return l.WithFields(fields)
	}
	return l
}

// SetLevel adjusts the level when the wrapped value is a *logrus.Logger.
// Entries inherit their parent logger's level, so this is a no-op for them.
func (l *LogrusAdapter) SetLevel(level Level) {
	base, ok := l.logger.(*logrus.Logger)
	if !ok {
		return
	}

	switch level {
	case DebugLevel:
		base.SetLevel(logrus.DebugLevel)
	case InfoLevel:
		base.SetLevel(logrus.InfoLevel)
	case WarnLevel:
		base.SetLevel(logrus.WarnLevel)
	case ErrorLevel:
		base.SetLevel(logrus.ErrorLevel)
	case FatalLevel:
		base.SetLevel(logrus.FatalLevel)
	}
}
