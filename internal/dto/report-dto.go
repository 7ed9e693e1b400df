package dto

import "github.com/aarondl/null/v8"

type CreateReportDTO struct {
	SenderID           uint64      `json:"sender_id" validate:"required"`
	CategoryID         uint64      `json:"category_id" validate:"required"`
	StatusID           uint64      `json:"status_id" validate:"required"`
	PriorityID         null.Uint64 `json:"priority_id"`
	TypeID             null.Uint64 `json:"type_id"`
	ExecutorID         null.Uint64 `json:"executor_id"`
	RequestID          null.Uint64 `json:"request_id"`
	FirstOperationDate null.Time   `json:"first_operation_date"`
	OperationTime      null.Int    `json:"operation_time"`
	PlannedOperTime    null.Int    `json:"planned_operation_time"`
	Result             null.String `json:"result"`
	Solution           null.String `json:"solution"`
	Channel            null.String `json:"channel"`
	Routine            bool        `json:"routine"`
	Code               null.String `json:"code"`
	RootCause          null.String `json:"root_cause"`
}

// OutReportDTO — проекция отчёта с денормализованными именами.
type OutReportDTO struct {
	ID                 uint64  `json:"id"`
	Sender             string  `json:"sender"`
	CategoryName       string  `json:"category_name"`
	StatusName         string  `json:"status_name"`
	Executor           string  `json:"executor,omitempty"`
	RequestID          *uint64 `json:"request_id,omitempty"`
	CreatedAt          string  `json:"created_at"`
	FirstOperationDate string  `json:"first_operation_date,omitempty"`
	OperationTime      *int    `json:"operation_time,omitempty"`
	PlannedOperTime    *int    `json:"planned_operation_time,omitempty"`
	CloseDate          string  `json:"close_date,omitempty"`
	Result             string  `json:"result,omitempty"`
	Solution           string  `json:"solution,omitempty"`
	Channel            string  `json:"channel,omitempty"`
	Routine            bool    `json:"routine"`
	Code               string  `json:"code,omitempty"`
	RootCause          string  `json:"root_cause,omitempty"`
}

type FilteredReportsDTO struct {
	Items      []OutReportDTO `json:"items"`
	TotalCount uint64         `json:"total_count"`
}
