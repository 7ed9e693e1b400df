package entities

import (
	"time"

	"helpdesk-system/pkg/types"
)

type Request struct {
	ID                 uint64     `json:"id" db:"id"`
	Header             string     `json:"header" db:"header"`
	Text               string     `json:"text" db:"text"`
	CreatorID          uint64     `json:"creator_id" db:"creator_id"`
	ExecutorID         *uint64    `json:"executor_id" db:"executor_id"`
	CategoryID         uint64     `json:"category_id" db:"category_id"`
	PriorityID         uint64     `json:"priority_id" db:"priority_id"`
	TypeID             uint64     `json:"type_id" db:"type_id"`
	StatusID           uint64     `json:"status_id" db:"status_id"`
	FileID             *uint64    `json:"file_id" db:"file_id"`
	FirstOperationDate *time.Time `json:"first_operation_date" db:"first_operation_date"`

	types.BaseEntity
	types.SoftDelete
}
