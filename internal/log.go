package internal

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel orders verbosity from ERROR (quietest) to TRACE.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (lv LogLevel) String() string {
	if lv < LogLevelError || lv > LogLevelTrace {
		return "INFO"
	}
	return levelNames[lv]
}

// ParseLevel maps a LOG_LEVEL value to a LogLevel. Unknown names mean INFO.
func ParseLevel(name string) LogLevel {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes "[LEVEL] message" lines for messages at or below its level.
type Logger struct {
	out   *log.Logger
	level LogLevel
}

// NewLogger logs through the standard library's default logger.
func NewLogger(level LogLevel) *Logger {
	return &Logger{out: log.Default(), level: level}
}

// NewLoggerTo logs to w with the standard date and time prefix.
func NewLoggerTo(w io.Writer, level LogLevel) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags), level: level}
}

// NewDefaultLogger reads the level from LOG_LEVEL.
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// Enabled reports whether messages at lv are written.
func (l *Logger) Enabled(lv LogLevel) bool {
	return lv <= l.level
}

func (l *Logger) logf(lv LogLevel, format string, args []interface{}) {
	if !l.Enabled(lv) {
		return
	}
	l.out.Printf("["+lv.String()+"] "+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LogLevelError, format, args) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LogLevelWarn, format, args) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LogLevelInfo, format, args) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LogLevelDebug, format, args) }
func (l *Logger) Trace(format string, args ...interface{}) { l.logf(LogLevelTrace, format, args) }

// GetLevel returns the most verbose level the logger writes.
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// DefaultLogger is shared by packages that are not handed a logger explicitly.
var DefaultLogger = NewDefaultLogger()
