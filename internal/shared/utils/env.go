package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of key, or defaultValue when it is unset or empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvMillis reads a millisecond count and returns it as a duration
func GetEnvMillis(key string, defaultValue time.Duration) time.Duration {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return time.Duration(value) * time.Millisecond
}
