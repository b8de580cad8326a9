package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/model"
)

// RecordRepository — доступ к строкам каталога, параметризованный категорией.
// Владение строками обеспечивается здесь: выборка фильтрует по user_id,
// удаление сверяет и id, и владельца.
type RecordRepository interface {
	// List возвращает строки пользователя в категории, новые первыми.
	List(ctx context.Context, cat catalog.Category, userID int64) ([]catalog.Row, error)

	// Insert сохраняет строку; id и created_at назначает сервер.
	Insert(ctx context.Context, cat catalog.Category, row *catalog.Row) error

	// DeleteByID удаляет строку пользователя по id.
	// deleted=false, если строки нет или она принадлежит другому.
	DeleteByID(ctx context.Context, cat catalog.Category, userID int64, id string) (deleted bool, err error)
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository создаёт реализацию репозитория каталога.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) List(ctx context.Context, cat catalog.Category, userID int64) ([]catalog.Row, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	switch cat {
	case catalog.Movies:
		var ms []model.Movie
		if err := q.Find(&ms).Error; err != nil {
			return nil, err
		}
		rows := make([]catalog.Row, 0, len(ms))
		for _, m := range ms {
			rows = append(rows, catalog.Row{
				ID: m.ID, UserID: m.UserID, Title: m.Title,
				Notes: m.Notes, Status: m.Status, CreatedAt: m.CreatedAt,
			})
		}
		return rows, nil

	case catalog.Books:
		var bs []model.Book
		if err := q.Find(&bs).Error; err != nil {
			return nil, err
		}
		rows := make([]catalog.Row, 0, len(bs))
		for _, b := range bs {
			rows = append(rows, catalog.Row{
				ID: b.ID, UserID: b.UserID, Title: b.Title,
				Notes: b.Notes, Status: b.Status, CreatedAt: b.CreatedAt,
			})
		}
		return rows, nil

	case catalog.Albums:
		var as []model.Album
		if err := q.Find(&as).Error; err != nil {
			return nil, err
		}
		rows := make([]catalog.Row, 0, len(as))
		for _, a := range as {
			rows = append(rows, catalog.Row{
				ID: a.ID, UserID: a.UserID, AlbumName: a.AlbumName, Artist: a.Artist,
				Notes: a.Notes, Status: a.Status, CreatedAt: a.CreatedAt,
			})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown category %q", cat)
}

func (r *recordRepo) Insert(ctx context.Context, cat catalog.Category, row *catalog.Row) error {
	db := r.db.WithContext(ctx)
	switch cat {
	case catalog.Movies:
		return db.Create(&model.Movie{
			ID: row.ID, UserID: row.UserID, Title: row.Title,
			Notes: row.Notes, Status: row.Status,
		}).Error
	case catalog.Books:
		return db.Create(&model.Book{
			ID: row.ID, UserID: row.UserID, Title: row.Title,
			Notes: row.Notes, Status: row.Status,
		}).Error
	case catalog.Albums:
		return db.Create(&model.Album{
			ID: row.ID, UserID: row.UserID, AlbumName: row.AlbumName, Artist: row.Artist,
			Notes: row.Notes, Status: row.Status,
		}).Error
	}
	return fmt.Errorf("unknown category %q", cat)
}

func (r *recordRepo) DeleteByID(ctx context.Context, cat catalog.Category, userID int64, id string) (bool, error) {
	cond := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID)

	var tx *gorm.DB
	switch cat {
	case catalog.Movies:
		tx = cond.Delete(&model.Movie{})
	case catalog.Books:
		tx = cond.Delete(&model.Book{})
	case catalog.Albums:
		tx = cond.Delete(&model.Album{})
	default:
		return false, fmt.Errorf("unknown category %q", cat)
	}
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
