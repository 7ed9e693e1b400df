package utils

import (
	"net/url"
	"strconv"
	"time"

	"helpdesk-system/pkg/types"
)

const MaxPageSize = 100

// ParseListFilter разбирает query-параметры спискового эндпоинта.
// defaultPageSize различается по эндпоинтам (заявки — 10, отчёты — 5).
func ParseListFilter(values url.Values, defaultPageSize int) types.ListFilter {
	filter := types.ListFilter{
		Page:     1,
		PageSize: defaultPageSize,
	}

	filter.CategoryID = parseUintParam(values, "categoryId")
	filter.StatusID = parseUintParam(values, "statusId")
	filter.PriorityID = parseUintParam(values, "priorityId")
	filter.ExecutorID = parseUintParam(values, "executorId")

	filter.FromDate = parseDateParam(values, "fromDate")
	filter.ToDate = parseDateParam(values, "toDate")

	filter.Search = values.Get("search")
	filter.SortField = values.Get("sortField")
	filter.SortDirection = values.Get("sortDirection")

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if sizeStr := values.Get("pageSize"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			if s > MaxPageSize {
				s = MaxPageSize
			}
			filter.PageSize = s
		}
	}

	return filter
}

func parseUintParam(values url.Values, key string) *uint64 {
	s := values.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDateParam(values url.Values, key string) *time.Time {
	s := values.Get(key)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
