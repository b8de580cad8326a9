package catalog

import (
	"fmt"
	"time"
)

// Category — фиксированное перечисление разделов каталога.
// Категория выбирает и таблицу хранения, и схему полей формы.
type Category string

const (
	Movies Category = "movies"
	Books  Category = "books"
	Albums Category = "albums"
)

// All возвращает категории в порядке отображения вкладок.
func All() []Category {
	return []Category{Movies, Books, Albums}
}

// Parse проверяет строку категории (например из URL).
func Parse(s string) (Category, error) {
	switch Category(s) {
	case Movies, Books, Albums:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Schema описывает, какие поля есть у категории и как они
// отображаются на колонки хранилища. Форма и рендер строк
// управляются этой таблицей, а не ветвлением по имени категории.
type Schema struct {
	Table       string // имя таблицы в Record Store
	TitleColumn string // колонка обязательного заголовка: title или album_name
	TitleLabel  string // подпись поля в форме
	HasArtist   bool   // только альбомы несут поле artist
}

var schemas = map[Category]Schema{
	Movies: {Table: "movies", TitleColumn: "title", TitleLabel: "Title"},
	Books:  {Table: "books", TitleColumn: "title", TitleLabel: "Title"},
	Albums: {Table: "albums", TitleColumn: "album_name", TitleLabel: "Album Name", HasArtist: true},
}

// Schema возвращает схему полей категории.
func (c Category) Schema() Schema {
	return schemas[c]
}

func (c Category) String() string { return string(c) }

// Row — общее представление строки каталога для всех категорий.
// Title хранит либо title, либо album_name — по схеме категории.
type Row struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	AlbumName string    `json:"album_name,omitempty"`
	Artist    string    `json:"artist,omitempty"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayTitle возвращает заголовок строки по схеме категории.
func (r Row) DisplayTitle(c Category) string {
	if c.Schema().HasArtist {
		return r.AlbumName
	}
	return r.Title
}

// Draft — несохранённый ввод формы добавления. Живёт ровно в одной
// категории: переключение вкладки его отбрасывает.
type Draft struct {
	Title  string // title либо album_name — по схеме категории
	Artist string // только для альбомов
	Notes  string
	Status string
}

// Empty сообщает, пуст ли обязательный заголовок черновика.
func (d Draft) Empty() bool { return d.Title == "" }
