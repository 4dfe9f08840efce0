package config

import (
	"io"
	"log/slog"
)

// NewLogHandlerForTest exposes handler construction for testing purposes
func NewLogHandlerForTest(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	return newLogHandler(w, format, level)
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, sqlitePath, projectID string) *Repository {
	return &Repository{
		backend:            backend,
		sqlitePath:         sqlitePath,
		firestoreProjectID: projectID,
	}
}
