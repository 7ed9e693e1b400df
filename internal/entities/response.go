package entities

import "helpdesk-system/pkg/types"

// Response — официальный ответ на заявку; на заявку существует не более
// одного ответа (уникальный request_id).
type Response struct {
	ID        uint64  `json:"id" db:"id"`
	Text      string  `json:"text" db:"text"`
	RequestID uint64  `json:"request_id" db:"request_id"`
	StatusID  uint64  `json:"status_id" db:"status_id"`
	AuthorID  uint64  `json:"author_id" db:"author_id"`
	FileID    *uint64 `json:"file_id" db:"file_id"`

	types.BaseEntity
	types.SoftDelete
}
