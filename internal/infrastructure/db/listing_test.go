package db

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-system/pkg/types"
)

func baseQuery() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From("items")
}

func TestApplyIDFilter(t *testing.T) {
	t.Run("nil пропускает фильтр", func(t *testing.T) {
		sqlStr, args, err := ApplyIDFilter(baseQuery(), "category_id", nil).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sqlStr, "category_id")
		assert.Empty(t, args)
	})

	t.Run("значение добавляет равенство", func(t *testing.T) {
		id := uint64(7)
		sqlStr, args, err := ApplyIDFilter(baseQuery(), "category_id", &id).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "category_id = $1")
		assert.Equal(t, []interface{}{uint64(7)}, args)
	})
}

func TestApplyDateRange(t *testing.T) {
	from := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	to := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

	sqlStr, args, err := ApplyDateRange(baseQuery(), "created_at", &from, &to).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "created_at >= $1")
	assert.Contains(t, sqlStr, "created_at < $2")

	require.Len(t, args, 2)
	// from усечён до начала суток.
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), args[0])
	// to включает весь день 12-го: граница сдвинута на следующие сутки.
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), args[1])
}

func TestApplyDateRangeOnlyFrom(t *testing.T) {
	from := time.Date(2025, 5, 1, 23, 59, 59, 0, time.UTC)

	sqlStr, args, err := ApplyDateRange(baseQuery(), "created_at", &from, nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "created_at >= $1")
	assert.NotContains(t, sqlStr, "created_at <")
	require.Len(t, args, 1)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), args[0])
}

func TestApplySearch(t *testing.T) {
	t.Run("пустая строка ничего не меняет", func(t *testing.T) {
		sqlStr, _, err := ApplySearch(baseQuery(), "   ", []string{"header"}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sqlStr, "ILIKE")
	})

	t.Run("поиск по нескольким колонкам через OR", func(t *testing.T) {
		sqlStr, args, err := ApplySearch(baseQuery(), "принтер", []string{"header", "text"}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "header ILIKE $1 OR text ILIKE $2")
		assert.Equal(t, []interface{}{"%принтер%", "%принтер%"}, args)
	})
}

func TestApplySort(t *testing.T) {
	allowed := map[string]string{
		"header":    "r.header",
		"createdAt": "r.created_at",
	}

	t.Run("неизвестное поле даёт сортировку по умолчанию", func(t *testing.T) {
		sqlStr, _, err := ApplySort(baseQuery(), "hacked; DROP TABLE", "asc", allowed, "r.created_at", "r.id").ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "ORDER BY r.created_at DESC, r.id ASC")
		assert.NotContains(t, sqlStr, "hacked")
	})

	t.Run("пустое поле даёт сортировку по умолчанию", func(t *testing.T) {
		sqlStr, _, err := ApplySort(baseQuery(), "", "", allowed, "r.created_at", "r.id").ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "ORDER BY r.created_at DESC, r.id ASC")
	})

	t.Run("разрешённое поле сортируется с NULLS LAST и вторичным ключом", func(t *testing.T) {
		sqlStr, _, err := ApplySort(baseQuery(), "header", "desc", allowed, "r.created_at", "r.id").ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "ORDER BY r.header DESC NULLS LAST, r.id ASC")
	})

	t.Run("направление по умолчанию ASC", func(t *testing.T) {
		sqlStr, _, err := ApplySort(baseQuery(), "header", "sideways", allowed, "r.created_at", "r.id").ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "ORDER BY r.header ASC NULLS LAST, r.id ASC")
	})
}

func TestApplyPagination(t *testing.T) {
	t.Run("первая страница без смещения", func(t *testing.T) {
		sqlStr, _, err := ApplyPagination(baseQuery(), types.ListFilter{Page: 1, PageSize: 10}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "LIMIT 10 OFFSET 0")
	})

	t.Run("третья страница по пять строк", func(t *testing.T) {
		sqlStr, _, err := ApplyPagination(baseQuery(), types.ListFilter{Page: 3, PageSize: 5}).ToSql()
		require.NoError(t, err)
		assert.Contains(t, sqlStr, "LIMIT 5 OFFSET 10")
	})

	t.Run("нулевой размер страницы отключает пагинацию", func(t *testing.T) {
		sqlStr, _, err := ApplyPagination(baseQuery(), types.ListFilter{Page: 1, PageSize: 0}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, sqlStr, "LIMIT")
	})
}
