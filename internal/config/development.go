package config

import (
	"log/slog"
	"os"
	"strings"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogLevel reads LOG_LEVEL, falling back to debug in development and info
// otherwise.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if Development() {
		level = slog.LevelDebug
	}
	levelStr, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return level
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(levelStr))); err != nil {
		return slog.LevelInfo
	}
	return level
}
