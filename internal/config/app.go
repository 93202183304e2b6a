package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort         = ":8080"
	defaultSessionTTL   = time.Minute * 30
	defaultMaxBoardSize = 64
)

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

// SessionTTL is how long an untouched game session is kept in memory.
func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok {
		return defaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_TTL must be positive (got %s)", ttl)
	}
	return ttl, nil
}

func MaxBoardSize() (int, error) {
	sizeStr, ok := os.LookupEnv("MAX_BOARD_SIZE")
	if !ok {
		return defaultMaxBoardSize, nil
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("unable to convert MAX_BOARD_SIZE to int: %w", err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("MAX_BOARD_SIZE must be positive (got %d)", size)
	}
	return size, nil
}
