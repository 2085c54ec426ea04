package utils

import (
	"os"
	"strconv"
)

// GetEnvString значение переменной окружения, либо defaultValue
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt числовое значение переменной окружения, либо defaultValue
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	ret, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return ret
}
