package source

import (
	"fmt"
	"os"

	"github.com/notaneet/raspbot/model"
)

// FileSource источник из json-файла на диске
type FileSource struct {
	Path string
}

func (s FileSource) Load() (*model.Document, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("путь к файлу расписания не задан")
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return decode(raw)
}
