package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"MuseShelf/internal/catalog"
	"MuseShelf/internal/model"
)

func newCatalogUser(t *testing.T, r UserRepository, email string) int64 {
	t.Helper()
	u, err := r.CreateUser(context.Background(), &model.User{Email: email, Password: "hash"})
	assert.NoError(t, err)
	return u.ID
}

func TestRecordRepository_InsertAndListOrder(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	records := NewRecordRepository(db)
	ctx := context.Background()

	uid := newCatalogUser(t, users, "order@example.com")

	// две вставки с паузой — порядок в списке должен быть обратный
	first := &catalog.Row{ID: uuid.NewString(), UserID: uid, Title: "Dune", Status: "watched"}
	assert.NoError(t, records.Insert(ctx, catalog.Movies, first))
	time.Sleep(5 * time.Millisecond)
	second := &catalog.Row{ID: uuid.NewString(), UserID: uid, Title: "Alien", Notes: "rewatch"}
	assert.NoError(t, records.Insert(ctx, catalog.Movies, second))

	rows, err := records.List(ctx, catalog.Movies, uid)
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		// created_at DESC: последняя вставка первая
		assert.Equal(t, "Alien", rows[0].Title)
		assert.Equal(t, "Dune", rows[1].Title)
	}
}

func TestRecordRepository_OwnershipFilter(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	records := NewRecordRepository(db)
	ctx := context.Background()

	alice := newCatalogUser(t, users, "alice-owner@example.com")
	bob := newCatalogUser(t, users, "bob-owner@example.com")

	assert.NoError(t, records.Insert(ctx, catalog.Books, &catalog.Row{ID: uuid.NewString(), UserID: alice, Title: "Solaris"}))

	// чужие строки не видны
	rows, err := records.List(ctx, catalog.Books, bob)
	assert.NoError(t, err)
	assert.Empty(t, rows)

	// пустой результат — нормальное состояние, не ошибка
	rows, err = records.List(ctx, catalog.Movies, bob)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordRepository_AlbumsCarryArtist(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	records := NewRecordRepository(db)
	ctx := context.Background()

	uid := newCatalogUser(t, users, "albums@example.com")

	row := &catalog.Row{ID: uuid.NewString(), UserID: uid, AlbumName: "Kid A", Artist: "Radiohead", Status: "owned"}
	assert.NoError(t, records.Insert(ctx, catalog.Albums, row))

	rows, err := records.List(ctx, catalog.Albums, uid)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "Kid A", rows[0].AlbumName)
		assert.Equal(t, "Radiohead", rows[0].Artist)
		assert.Empty(t, rows[0].Title)
	}
}

func TestRecordRepository_DeleteByID(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	records := NewRecordRepository(db)
	ctx := context.Background()

	alice := newCatalogUser(t, users, "alice-del@example.com")
	bob := newCatalogUser(t, users, "bob-del@example.com")

	id := uuid.NewString()
	assert.NoError(t, records.Insert(ctx, catalog.Movies, &catalog.Row{ID: id, UserID: alice, Title: "Stalker"}))

	// чужую строку удалить нельзя
	deleted, err := records.DeleteByID(ctx, catalog.Movies, bob, id)
	assert.NoError(t, err)
	assert.False(t, deleted)

	// своя удаляется ровно один раз
	deleted, err = records.DeleteByID(ctx, catalog.Movies, alice, id)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = records.DeleteByID(ctx, catalog.Movies, alice, id)
	assert.NoError(t, err)
	assert.False(t, deleted)

	rows, err := records.List(ctx, catalog.Movies, alice)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRecordRepository_UnknownCategory(t *testing.T) {
	db := newTestDB(t)
	records := NewRecordRepository(db)
	ctx := context.Background()

	_, err := records.List(ctx, catalog.Category("games"), 1)
	assert.Error(t, err)

	err = records.Insert(ctx, catalog.Category("games"), &catalog.Row{ID: uuid.NewString(), UserID: 1, Title: "x"})
	assert.Error(t, err)
}
