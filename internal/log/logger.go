// Package log writes errors and debug lines to a log file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Logger writes errors to stderr and a log file, and debug lines to the
// log file only.
type Logger struct {
	file *os.File
	errw io.Writer
}

// New creates a new logger backed by parley.log.
// The log file is created in the specified directory.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "parley.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file: file,
		errw: os.Stderr,
	}, nil
}

// Errorf writes a formatted error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	formatted := fmt.Sprintf("[%s] %s\n", timestamp(), fmt.Sprintf(format, args...))
	_, _ = fmt.Fprint(l.errw, formatted)
	if l.file != nil {
		_, _ = fmt.Fprint(l.file, formatted)
	}
}

// Debugf writes a component-tagged debug line to the log file only.
func (l *Logger) Debugf(component, format string, args ...interface{}) {
	if l.file == nil {
		return
	}
	_, _ = fmt.Fprintf(l.file, "[%s] DEBUG %s: %s\n", timestamp(), component, fmt.Sprintf(format, args...))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// Global logger instance
var globalLogger *Logger

var debugEnabled atomic.Bool

// debugOut receives debug lines when no global logger is installed.
var debugOut io.Writer = os.Stderr

// Init initializes the global logger.
// Also redirects Go's standard log package to write to the log file.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// SetDebug toggles DebugLog output.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled reports whether DebugLog output is on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// DebugLog writes a debug line for component when debug logging is enabled.
func DebugLog(component, format string, args ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	if globalLogger != nil {
		globalLogger.Debugf(component, format, args...)
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[%s] DEBUG %s: %s\n", timestamp(), component, fmt.Sprintf(format, args...))
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		err := globalLogger.Close()
		globalLogger = nil
		stdlog.SetOutput(os.Stderr)
		return err
	}
	return nil
}
