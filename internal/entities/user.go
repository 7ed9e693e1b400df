package entities

import (
	"time"

	"helpdesk-system/pkg/types"
)

type User struct {
	ID             uint64  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Surname        string  `json:"surname" db:"surname"`
	Email          string  `json:"email" db:"email"`
	Position       string  `json:"position" db:"position"`
	Password       string  `json:"-" db:"password"`
	ProfilePhotoID *uint64 `json:"profile_photo_id" db:"profile_photo_id"`

	types.BaseEntity
	types.SoftDelete
}

// PasswordHistoryEntry — прежний хеш пароля; используется для запрета
// повторного использования паролей.
type PasswordHistoryEntry struct {
	ID        uint64    `json:"id" db:"id"`
	UserID    uint64    `json:"user_id" db:"user_id"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Role struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
