package dto

type CreateRequestDTO struct {
	Header     string `json:"header" validate:"required,max=255"`
	Text       string `json:"text" validate:"required"`
	UserID     uint64 `json:"user_id" validate:"required"`
	CategoryID uint64 `json:"category_id" validate:"required"`
	PriorityID uint64 `json:"priority_id" validate:"required"`
	TypeID     uint64 `json:"type_id" validate:"required"`
}

// UpdateRequestDTO повторяет поля создания: обновление принимает полный
// набор полей и сравнивает его с текущим состоянием.
type UpdateRequestDTO = CreateRequestDTO

type ChangeRequestStatusDTO struct {
	StatusID uint64 `json:"status_id" validate:"required"`
}

// OutRequestDTO — строка списка заявок с денормализованными именами.
type OutRequestDTO struct {
	ID              uint64        `json:"id"`
	Header          string        `json:"header"`
	Text            string        `json:"text"`
	UserName        string        `json:"username"`
	UserSurname     string        `json:"usersurname"`
	CategoryName    string        `json:"category_name"`
	StatusName      string        `json:"status_name"`
	PriorityLevel   string        `json:"priority_level"`
	RequestTypeName string        `json:"request_type_name"`
	ExecutorName    string        `json:"executor_name,omitempty"`
	ExecutorSurname string        `json:"executor_surname,omitempty"`
	CreatedAt       string        `json:"created_at"`
	FileID          *uint64       `json:"file_id,omitempty"`
	File            *ShortFileDTO `json:"file,omitempty"`
}

// RequestDetailsDTO — полная карточка заявки для секционного просмотра.
type RequestDetailsDTO struct {
	ID                 uint64        `json:"id"`
	Header             string        `json:"header"`
	Text               string        `json:"text"`
	StatusID           uint64        `json:"status_id"`
	StatusName         string        `json:"status_name"`
	CategoryID         uint64        `json:"category_id"`
	CategoryName       string        `json:"category_name"`
	PriorityID         uint64        `json:"priority_id"`
	PriorityLevel      string        `json:"priority_level"`
	TypeID             uint64        `json:"type_id"`
	RequestTypeName    string        `json:"request_type_name"`
	Creator            ShortUserDTO  `json:"creator"`
	Executor           *ShortUserDTO `json:"executor,omitempty"`
	FirstOperationDate string        `json:"first_operation_date,omitempty"`
	CreatedAt          string        `json:"created_at"`
	File               *ShortFileDTO `json:"file,omitempty"`

	Response *ResponseDTO        `json:"response,omitempty"`
	Comments []CommentDTO        `json:"comments,omitempty"`
	History  []RequestHistoryDTO `json:"history,omitempty"`
}

// FilteredRequestsDTO — страница списка плюс разбивка по статусам,
// посчитанная до применения фильтра по статусу.
type FilteredRequestsDTO struct {
	Items        []OutRequestDTO   `json:"items"`
	TotalCount   uint64            `json:"total_count"`
	StatusCounts map[string]uint64 `json:"status_counts"`
}
