package dto

type CreateCommentDTO struct {
	Text      string `json:"text" validate:"required"`
	RequestID uint64 `json:"request_id" validate:"required"`
}

type CommentDTO struct {
	ID         uint64        `json:"id"`
	Text       string        `json:"text"`
	RequestID  uint64        `json:"request_id"`
	Author     ShortUserDTO  `json:"author"`
	CreatedAt  string        `json:"created_at"`
	Attachment *ShortFileDTO `json:"attachment,omitempty"`
}
