package model

import "time"

// User — серверная модель учётной записи.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"not null;uniqueIndex"`
	Password string `gorm:"not null"` // bcrypt-хеш, в JSON не отдаётся

	// Подтверждение e-mail: регистрация создаёт неподтверждённого
	// пользователя, вход до подтверждения запрещён.
	Confirmed bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
