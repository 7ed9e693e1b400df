package types

import "time"

// ListFilter — общий набор параметров выборки для списковых эндпоинтов
// (заявки и отчёты используют одну и ту же схему фильтрации).
type ListFilter struct {
	CategoryID *uint64
	StatusID   *uint64
	PriorityID *uint64
	ExecutorID *uint64

	FromDate *time.Time
	ToDate   *time.Time

	Search string

	SortField     string
	SortDirection string

	Page     int
	PageSize int
}

// Offset переводит 1-базную страницу в смещение для SQL.
func (f ListFilter) Offset() uint64 {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return uint64((page - 1) * f.PageSize)
}

type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}
