package logger

import "go.uber.org/zap"

// New логгер под окружение: в production json, иначе читаемый вывод
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
