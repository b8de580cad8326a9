package model

import "time"

// Три раздела каталога — три независимые таблицы, а не фильтры
// одной. Поля владения и сортировки у всех одинаковые.

// Movie — строка раздела movies.
type Movie struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Title  string `gorm:"not null"`
	Notes  string
	Status string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Book — строка раздела books.
type Book struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Title  string `gorm:"not null"`
	Notes  string
	Status string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Album — строка раздела albums. Вместо title несёт album_name и artist.
type Album struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	AlbumName string `gorm:"not null"`
	Artist    string
	Notes     string
	Status    string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
