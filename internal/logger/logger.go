// Package logger is the bridge's leveled daemon logger. Messages are
// printf formatted and prefixed with the level and an optional component.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents logging severity
type LogLevel int32

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string, falling back to INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Rotation limits for file output
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 5
)

// Logger is a leveled logger. Loggers derived with Named share level and
// output with their parent.
type Logger struct {
	level     *atomic.Int32
	out       *log.Logger
	closer    io.Closer
	component string
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(newLogger(os.Stdout, nil, INFO))
}

func newLogger(w io.Writer, closer io.Closer, level LogLevel) *Logger {
	l := &Logger{
		level:  new(atomic.Int32),
		out:    log.New(w, "", log.LstdFlags),
		closer: closer,
	}
	l.level.Store(int32(level))
	return l
}

// New creates a logger. output is "stdout", "stderr" or a file path;
// files are rotated with lumberjack.
func New(level string, output string) (*Logger, error) {
	switch output {
	case "", "stdout":
		return newLogger(os.Stdout, nil, ParseLevel(level)), nil
	case "stderr":
		return newLogger(os.Stderr, nil, ParseLevel(level)), nil
	}

	// Fail early on unwritable paths, lumberjack would only report on first write
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	f.Close()

	rotating := &lumberjack.Logger{
		Filename:   output,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		LocalTime:  true,
	}
	return newLogger(rotating, rotating, ParseLevel(level)), nil
}

// Init replaces the default logger and closes the previous one
func Init(level string, output string) error {
	l, err := New(level, output)
	if err != nil {
		return err
	}
	if old := std.Swap(l); old != nil {
		old.Close()
	}
	return nil
}

// Default returns the default logger
func Default() *Logger {
	return std.Load()
}

// Named returns a logger that prefixes messages with component
func (l *Logger) Named(component string) *Logger {
	named := *l
	named.closer = nil
	if l.component != "" {
		named.component = l.component + "." + component
	} else {
		named.component = component
	}
	return &named
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// Level returns the current logging level
func (l *Logger) Level() LogLevel {
	return LogLevel(l.level.Load())
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.Level()
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.component != "" {
		l.out.Printf("[%s] %s: %s", level, l.component, msg)
		return
	}
	l.out.Printf("[%s] %s", level, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Printer adapts the logger to libraries that expect Println/Printf,
// writing everything at a fixed level
type Printer struct {
	l     *Logger
	level LogLevel
}

// Printer returns a Println/Printf adapter writing at level
func (l *Logger) Printer(level LogLevel) Printer {
	return Printer{l: l, level: level}
}

// Println logs the operands separated by spaces
func (p Printer) Println(v ...interface{}) {
	p.l.log(p.level, "%s", strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Printf logs a formatted message
func (p Printer) Printf(format string, v ...interface{}) {
	p.l.log(p.level, format, v...)
}

// Package-level convenience functions

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) {
	Default().Debug(format, args...)
}

// Info logs an info message using the default logger
func Info(format string, args ...interface{}) {
	Default().Info(format, args...)
}

// Warn logs a warning message using the default logger
func Warn(format string, args ...interface{}) {
	Default().Warn(format, args...)
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	Default().Error(format, args...)
}

// SetLevel sets the logging level on the default logger
func SetLevel(level LogLevel) {
	Default().SetLevel(level)
}

// Named returns a component logger derived from the default logger
func Named(component string) *Logger {
	return Default().Named(component)
}
