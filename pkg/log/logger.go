package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Init configures the package logger. format is "json" (default) or "text".
func Init(level, format string) {
	InitWithOutput(os.Stdout, level, format)
}

// InitWithOutput is Init with an explicit writer.
func InitWithOutput(w io.Writer, level, format string) {
	l := logrus.New()
	l.SetOutput(w)

	switch format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	default:
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	l.SetLevel(logLevel)

	Logger = l
}

// WithFields returns an entry carrying fields. It falls back to a discarding
// logger before Init so callers never need a nil check.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l.WithFields(fields)
	}
	return Logger.WithFields(fields)
}

// Convenience functions
func Debug(args ...interface{}) {
	if Logger != nil {
		Logger.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Debugf(format, args...)
	}
}

func Info(args ...interface{}) {
	if Logger != nil {
		Logger.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Infof(format, args...)
	}
}

func Warn(args ...interface{}) {
	if Logger != nil {
		Logger.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Warnf(format, args...)
	}
}

func Error(args ...interface{}) {
	if Logger != nil {
		Logger.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if Logger != nil {
		Logger.Errorf(format, args...)
	}
}
