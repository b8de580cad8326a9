package service

import (
	"context"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/cli/api"
)

// CatalogService описывает юзкейс-уровень каталога для клиента.
// Мутации не меняют локальный список: после успешных Add/Delete
// представление перечитывает категорию через List.
type CatalogService interface {
	// List возвращает строки категории, новые первыми.
	List(ctx context.Context, cat catalog.Category) ([]catalog.Row, error)

	// Add отправляет черновик; строку собирает сервер.
	Add(ctx context.Context, cat catalog.Category, draft catalog.Draft) error

	// Delete удаляет ровно одну строку по id.
	Delete(ctx context.Context, cat catalog.Category, id string) error
}

// catalogHTTP — реализация CatalogService поверх HTTP-клиента.
type catalogHTTP struct {
	api *api.Client
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(c *api.Client) CatalogService {
	return &catalogHTTP{api: c}
}

func (s *catalogHTTP) List(ctx context.Context, cat catalog.Category) ([]catalog.Row, error) {
	return s.api.ListRows(ctx, cat)
}

func (s *catalogHTTP) Add(ctx context.Context, cat catalog.Category, draft catalog.Draft) error {
	return s.api.InsertRow(ctx, cat, draft)
}

func (s *catalogHTTP) Delete(ctx context.Context, cat catalog.Category, id string) error {
	return s.api.DeleteRow(ctx, cat, id)
}
