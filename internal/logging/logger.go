// Package logging provides config-driven categorized file-based logging for
// esgcopilot. Logs are written to .esgcopilot/logs/ with separate files per
// category. When debug mode is off the whole package is a silent no-op, so
// callers never have to guard log statements.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and config resolution
	CategoryStore   Category = "store"   // Entity store mutations
	CategoryCopilot Category = "copilot" // AI orchestration and fallbacks
	CategoryGemini  Category = "gemini"  // External service calls
	CategoryChat    Category = "chat"    // Conversation log and chat surface
)

// Logger wraps a standard logger bound to one category file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu         sync.RWMutex
	loggers    = map[Category]*Logger{}
	logsDir    string
	enabled    bool
	categories map[string]bool
)

// Initialize sets up the logging directory. debugMode=false leaves the
// package disabled; enabledCategories=nil enables every category.
func Initialize(workspace string, debugMode bool, enabledCategories map[string]bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = debugMode
	categories = enabledCategories
	if !enabled {
		return nil
	}
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	logsDir = filepath.Join(workspace, ".esgcopilot", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// Shutdown closes all open log files.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = map[Category]*Logger{}
}

func categoryEnabled(c Category) bool {
	if !enabled {
		return false
	}
	if categories == nil {
		return true
	}
	on, known := categories[string(c)]
	return !known || on
}

// Get returns the logger for a category, creating its file on first use.
func Get(c Category) *Logger {
	mu.RLock()
	l, ok := loggers[c]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[c]; ok {
		return l
	}

	l = &Logger{category: c}
	if categoryEnabled(c) && logsDir != "" {
		path := filepath.Join(logsDir, string(c)+".log")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			l.file = f
			l.logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
		}
	}
	loggers[c] = l
	return l
}

func (l *Logger) write(level, format string, args ...interface{}) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) { l.write("DEBUG", format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) { l.write("INFO", format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) { l.write("WARN", format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) { l.write("ERROR", format, args...) }

// Package-level convenience helpers, one set per subsystem.

func Store(format string, args ...interface{})        { Get(CategoryStore).Info(format, args...) }
func StoreDebug(format string, args ...interface{})   { Get(CategoryStore).Debug(format, args...) }
func StoreWarn(format string, args ...interface{})    { Get(CategoryStore).Warn(format, args...) }
func Copilot(format string, args ...interface{})      { Get(CategoryCopilot).Info(format, args...) }
func CopilotDebug(format string, args ...interface{}) { Get(CategoryCopilot).Debug(format, args...) }
func CopilotWarn(format string, args ...interface{})  { Get(CategoryCopilot).Warn(format, args...) }
func CopilotError(format string, args ...interface{}) { Get(CategoryCopilot).Error(format, args...) }
func Gemini(format string, args ...interface{})       { Get(CategoryGemini).Info(format, args...) }
func GeminiDebug(format string, args ...interface{})  { Get(CategoryGemini).Debug(format, args...) }
func GeminiError(format string, args ...interface{})  { Get(CategoryGemini).Error(format, args...) }
func Chat(format string, args ...interface{})         { Get(CategoryChat).Info(format, args...) }
func Boot(format string, args ...interface{})         { Get(CategoryBoot).Info(format, args...) }
