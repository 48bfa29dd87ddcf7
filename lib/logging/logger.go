// Package logging provides the leveled, name-scoped loggers used across
// the benchmark tool.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

type LogLevel int

const (
	ERROR LogLevel = iota
	WARNING
	INFO
	DEBUG
)

// ParseLogLevel converts a string level to a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the logging interface used by the benchmark components.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Default Logger (stderr, custom formatting)
// --------------------------------------------------------------------------

// benchLogger implements ILogger with custom formatting
type benchLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *benchLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *benchLogger) Debugf(format string, args ...interface{}) {
	if l.level >= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *benchLogger) Infof(format string, args ...interface{}) {
	if l.level >= INFO {
		l.log("INFO", format, args...)
	}
}

func (l *benchLogger) Warningf(format string, args ...interface{}) {
	if l.level >= WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *benchLogger) Errorf(format string, args ...interface{}) {
	if l.level >= ERROR {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *benchLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-12s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger creates a name-scoped logger writing to stderr. Logs go to
// stderr so the per-run JSONL records on stdout stay machine-parseable.
func CreateLogger(pkgName string) ILogger {
	stdLogger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	return &benchLogger{
		name:   pkgName,
		level:  INFO,
		logger: stdLogger,
	}
}
