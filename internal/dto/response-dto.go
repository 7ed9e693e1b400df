package dto

type CreateResponseDTO struct {
	Text      string `json:"text" validate:"required"`
	RequestID uint64 `json:"request_id" validate:"required"`
	StatusID  uint64 `json:"status_id" validate:"required"`
}

type ChangeResponseStatusDTO struct {
	StatusID uint64 `json:"status_id" validate:"required"`
}

type ResponseDTO struct {
	ID         uint64        `json:"id"`
	Text       string        `json:"text"`
	RequestID  uint64        `json:"request_id"`
	StatusID   uint64        `json:"status_id"`
	StatusName string        `json:"status_name"`
	Author     ShortUserDTO  `json:"author"`
	CreatedAt  string        `json:"created_at"`
	File       *ShortFileDTO `json:"file,omitempty"`
}
