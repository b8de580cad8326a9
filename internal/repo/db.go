package repo

import (
	"strings"

	gormpg "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"MuseShelf/internal/model"
)

// InitDB открывает соединение и прогоняет автомиграции всех моделей.
// postgres:// DSN — боевой режим; всё остальное трактуем как путь к
// файлу SQLite (драйвер modernc, без cgo). Пустой DSN — локальный файл.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dial = gormpg.Open(dsn)
	case dsn == "":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "museshelf.db"}
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Book{},
		&model.Album{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
