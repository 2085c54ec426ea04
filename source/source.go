// Package source загружает документ с расписанием при старте.
// Откуда бы ни пришел документ, он валидируется и дальше по процессу
// живет только для чтения.
package source

import (
	"github.com/notaneet/raspbot/config"
	"github.com/notaneet/raspbot/model"
)

type Source interface {
	Load() (*model.Document, error)
}

func New(cfg *config.Config) Source {
	switch cfg.Source {
	case "file":
		return FileSource{Path: cfg.SourceArg}
	case "web":
		return WebSource{PageURL: cfg.SourceArg}
	default:
		return EnvSource{}
	}
}
