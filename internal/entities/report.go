package entities

import (
	"time"

	"helpdesk-system/pkg/types"
)

// Report — операционная запись о ходе исполнения заявки. Живёт отдельным
// жизненным циклом: создаётся явным вызовом, закрывается побочным эффектом
// перевода заявки в статус "Закрыта".
type Report struct {
	ID                 uint64     `json:"id" db:"id"`
	SenderID           uint64     `json:"sender_id" db:"sender_id"`
	CategoryID         uint64     `json:"category_id" db:"category_id"`
	PriorityID         *uint64    `json:"priority_id" db:"priority_id"`
	TypeID             *uint64    `json:"type_id" db:"type_id"`
	StatusID           uint64     `json:"status_id" db:"status_id"`
	ExecutorID         *uint64    `json:"executor_id" db:"executor_id"`
	RequestID          *uint64    `json:"request_id" db:"request_id"`
	FirstOperationDate *time.Time `json:"first_operation_date" db:"first_operation_date"`
	OperationTime      *int       `json:"operation_time" db:"operation_time"`
	PlannedOperTime    *int       `json:"planned_operation_time" db:"planned_operation_time"`
	CloseDate          *time.Time `json:"close_date" db:"close_date"`
	Result             *string    `json:"result" db:"result"`
	Solution           *string    `json:"solution" db:"solution"`
	Channel            *string    `json:"channel" db:"channel"`
	Routine            bool       `json:"routine" db:"routine"`
	Code               *string    `json:"code" db:"code"`
	RootCause          *string    `json:"root_cause" db:"root_cause"`

	types.BaseEntity
	types.SoftDelete
}
