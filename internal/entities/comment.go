package entities

import "helpdesk-system/pkg/types"

// Comment не имеет мягкого удаления: комментарии сохраняются и после
// удаления заявки.
type Comment struct {
	ID           uint64  `json:"id" db:"id"`
	Text         string  `json:"text" db:"text"`
	RequestID    uint64  `json:"request_id" db:"request_id"`
	AuthorID     uint64  `json:"author_id" db:"author_id"`
	AttachmentID *uint64 `json:"attachment_id" db:"attachment_id"`

	types.BaseEntity
}
