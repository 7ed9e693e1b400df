package db

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"helpdesk-system/pkg/types"
)

// Общий механизм фильтрации/сортировки/пагинации списковых запросов.
// Заявки и отчёты строят свои ЗАПРОСЫ сами, но форма предикатов и
// детерминизм сортировки задаются здесь и обязаны совпадать.

func ApplyIDFilter(builder sq.SelectBuilder, column string, id *uint64) sq.SelectBuilder {
	if id == nil {
		return builder
	}
	return builder.Where(sq.Eq{column: *id})
}

// ApplyDateRange: from усекается до начала суток (включительно),
// to включает весь день целиком — внутренне `< to+1 день`.
func ApplyDateRange(builder sq.SelectBuilder, column string, from, to *time.Time) sq.SelectBuilder {
	if from != nil {
		day := truncateToDay(*from)
		builder = builder.Where(sq.GtOrEq{column: day})
	}
	if to != nil {
		nextDay := truncateToDay(*to).Add(24 * time.Hour)
		builder = builder.Where(sq.Lt{column: nextDay})
	}
	return builder
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ApplySearch — регистронезависимый поиск подстроки, OR по списку колонок.
// Без токенизации и ранжирования.
func ApplySearch(builder sq.SelectBuilder, search string, columns []string) sq.SelectBuilder {
	if strings.TrimSpace(search) == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + search + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return builder.Where(or)
}

// ApplySort сортирует по колонке из белого списка; неизвестное или пустое
// поле даёт сортировку по умолчанию (created_at DESC). Вторичный ключ по
// id добавляется всегда — одинаковый фильтр обязан давать одинаковый
// порядок строк.
func ApplySort(builder sq.SelectBuilder, field, direction string, allowed map[string]string, defaultColumn, tieBreakColumn string) sq.SelectBuilder {
	column, ok := allowed[field]
	if !ok {
		return builder.OrderBy(defaultColumn+" DESC", tieBreakColumn+" ASC")
	}

	dir := "ASC"
	if strings.ToLower(direction) == "desc" {
		dir = "DESC"
	}
	return builder.
		OrderBy(fmt.Sprintf("%s %s NULLS LAST", column, dir), tieBreakColumn+" ASC")
}

// ApplyPagination — 1-базная страница, Skip = (page-1)*pageSize.
func ApplyPagination(builder sq.SelectBuilder, filter types.ListFilter) sq.SelectBuilder {
	if filter.PageSize <= 0 {
		return builder
	}
	return builder.Limit(uint64(filter.PageSize)).Offset(filter.Offset())
}
