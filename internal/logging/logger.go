// Package logging provides structured logging with SRP secret redaction for the srp6a tool.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log entry.
type LogLevel string

// Log severity levels.
const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the output format for log entries.
type LogFormat string

// Log output formats.
const (
	// FormatJSON outputs one JSON object per line (default).
	FormatJSON LogFormat = "json"
	// FormatHuman outputs logs in human-readable format.
	FormatHuman LogFormat = "human"
)

var levelOrder = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel parses a level name. Matching is case-insensitive.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levelOrder[level]; !ok {
		return "", fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", s)
	}
	return level, nil
}

// ParseFormat parses a format name. Matching is case-insensitive.
func ParseFormat(s string) (LogFormat, error) {
	switch format := LogFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case FormatJSON, FormatHuman:
		return format, nil
	default:
		return "", fmt.Errorf("invalid log format %q (must be json or human)", s)
	}
}

// Logger provides structured logging with secret redaction.
// Error entries go to stderr, everything else to stdout.
type Logger struct {
	level    LogLevel
	format   LogFormat
	redactor *Redactor
	stdout   io.Writer
	stderr   io.Writer
	mu       sync.Mutex
}

type logEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a new Logger instance.
func New(level LogLevel, format LogFormat) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	l := New(LevelError, FormatJSON)
	l.SetOutput(io.Discard, io.Discard)
	return l
}

// SetOutput sets custom output writers.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// Redactor returns the redactor applied to every entry.
func (l *Logger) Redactor() *Redactor {
	return l.redactor
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return levelOrder[level] >= levelOrder[l.level]
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

func (l *Logger) log(level LogLevel, msg string, fields map[string]any) {
	if !l.Enabled(level) {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   msg,
		Fields:    l.redactor.RedactFields(fields),
	}

	var output string
	if l.format == FormatHuman {
		output = formatHuman(entry)
	} else {
		output = formatJSON(entry)
	}

	l.write(level, output)
}

func formatJSON(entry logEntry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			entry.Timestamp, err)
	}
	return string(data) + "\n"
}

// formatHuman writes fields as key=value pairs in key order.
func formatHuman(entry logEntry) string {
	var output strings.Builder
	fmt.Fprintf(&output, "[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message)

	for _, k := range slices.Sorted(maps.Keys(entry.Fields)) {
		fmt.Fprintf(&output, " %s=%v", k, entry.Fields[k])
	}

	output.WriteString("\n")
	return output.String()
}

func (l *Logger) write(level LogLevel, output string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	writer := l.stdout
	if level == LevelError {
		writer = l.stderr
	}

	_, _ = io.WriteString(writer, output)
}

func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	return merged
}

// WithFields creates a logger that adds fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *ContextLogger {
	return &ContextLogger{
		logger: l,
		fields: fields,
	}
}

// ContextLogger wraps a Logger with context-specific fields.
type ContextLogger struct {
	logger *Logger
	fields map[string]any
}

// WithFields returns a ContextLogger carrying both field sets.
func (cl *ContextLogger) WithFields(fields map[string]any) *ContextLogger {
	return cl.logger.WithFields(mergeFields(cl.fields, fields))
}

// Debug logs a debug-level message with context fields.
func (cl *ContextLogger) Debug(msg string, fields ...map[string]any) {
	cl.logger.Debug(msg, cl.merge(fields))
}

// Info logs an info-level message with context fields.
func (cl *ContextLogger) Info(msg string, fields ...map[string]any) {
	cl.logger.Info(msg, cl.merge(fields))
}

// Warn logs a warn-level message with context fields.
func (cl *ContextLogger) Warn(msg string, fields ...map[string]any) {
	cl.logger.Warn(msg, cl.merge(fields))
}

// Error logs an error-level message with context fields.
func (cl *ContextLogger) Error(msg string, fields ...map[string]any) {
	cl.logger.Error(msg, cl.merge(fields))
}

func (cl *ContextLogger) merge(fields []map[string]any) map[string]any {
	return mergeFields(append([]map[string]any{cl.fields}, fields...)...)
}
