package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/notaneet/raspbot/model"
)

// EnvVar переменная окружения с расписанием целиком, одной json-строкой
const EnvVar = "SCHEDULE_JSON"

// EnvSource источник из переменной окружения SCHEDULE_JSON
type EnvSource struct{}

func (EnvSource) Load() (*model.Document, error) {
	raw := os.Getenv(EnvVar)
	if raw == "" {
		return nil, fmt.Errorf("переменная окружения %s не найдена", EnvVar)
	}
	return decode([]byte(raw))
}

func decode(raw []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON расписания: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
