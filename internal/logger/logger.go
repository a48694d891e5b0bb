package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// RecipeParsed logs a successfully parsed recipe file
func (l *Logger) RecipeParsed(path, title string) {
	l.Debug("recipe parsed",
		"path", path,
		"title", title)
}

// ParseFailed logs a recipe file that could not be parsed
func (l *Logger) ParseFailed(path string, err error) {
	l.Warn("parse failed",
		"path", path,
		"error", err)
}

// ScanCompleted logs the result of scanning a recipe folder
func (l *Logger) ScanCompleted(folder string, recipes, skipped int, duration time.Duration) {
	l.Info("scan completed",
		"folder", folder,
		"recipes", recipes,
		"skipped", skipped,
		"duration", duration.Round(time.Millisecond))
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(recipeDir string, rounding int) {
	l.Debug("config loaded",
		"recipe_dir", recipeDir,
		"rounding", rounding)
}
