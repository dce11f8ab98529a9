package logger

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu  sync.RWMutex
	std = newLogger(os.Stdout, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
		Level:           level,
	})
}

// Init configures the process-wide logger. Unknown levels fall back to info.
func Init(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	SetOutput(os.Stdout, lvl)
	Info("logger initialized", map[string]any{"level": lvl.String()})
}

// SetOutput replaces the destination, mainly for tests.
func SetOutput(w io.Writer, level log.Level) {
	mu.Lock()
	std = newLogger(w, level)
	mu.Unlock()
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// keyvals flattens fields in key order so output is stable.
func keyvals(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}

func Debug(msg string, fields map[string]any) {
	current().Debug(msg, keyvals(fields)...)
}

func Info(msg string, fields map[string]any) {
	current().Info(msg, keyvals(fields)...)
}

func Warn(msg string, fields map[string]any) {
	current().Warn(msg, keyvals(fields)...)
}

func Error(msg string, fields map[string]any) {
	current().Error(msg, keyvals(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	current().Fatal(msg, keyvals(fields)...)
}
