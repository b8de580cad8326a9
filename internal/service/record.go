package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/repo"
)

var (
	// ErrEmptyTitle — обязательный заголовок (title/album_name) пуст.
	ErrEmptyTitle = errors.New("title is required")

	// ErrRowNotFound — строка не найдена или принадлежит другому пользователю.
	ErrRowNotFound = errors.New("row not found")
)

// RecordService — бизнес-логика каталога поверх RecordRepository.
type RecordService struct {
	repo   repo.RecordRepository
	logger *zap.SugaredLogger
}

func NewRecordService(r repo.RecordRepository, logger *zap.SugaredLogger) *RecordService {
	return &RecordService{repo: r, logger: logger}
}

// List возвращает строки пользователя в категории, created_at DESC.
func (s *RecordService) List(ctx context.Context, cat catalog.Category, userID int64) ([]catalog.Row, error) {
	return s.repo.List(ctx, cat, userID)
}

// Add собирает строку из черновика по схеме категории и сохраняет её.
// Владелец и id назначаются здесь, payload клиента их не переопределяет.
func (s *RecordService) Add(ctx context.Context, cat catalog.Category, userID int64, draft catalog.Draft) (*catalog.Row, error) {
	if draft.Empty() {
		return nil, ErrEmptyTitle
	}

	row := &catalog.Row{
		ID:     uuid.NewString(),
		UserID: userID,
		Notes:  draft.Notes,
		Status: draft.Status,
	}
	if cat.Schema().HasArtist {
		row.AlbumName = draft.Title
		row.Artist = draft.Artist
	} else {
		row.Title = draft.Title
	}

	if err := s.repo.Insert(ctx, cat, row); err != nil {
		s.logger.Errorw("add record", "category", cat, "user_id", userID, "error", err)
		return nil, err
	}
	return row, nil
}

// Delete удаляет строку пользователя; чужая или отсутствующая — ErrRowNotFound.
func (s *RecordService) Delete(ctx context.Context, cat catalog.Category, userID int64, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, cat, userID, id)
	if err != nil {
		s.logger.Errorw("delete record", "category", cat, "user_id", userID, "id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrRowNotFound
	}
	return nil
}
