package utils

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListFilterDefaults(t *testing.T) {
	filter := ParseListFilter(url.Values{}, 10)

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 10, filter.PageSize)
	assert.Nil(t, filter.CategoryID)
	assert.Nil(t, filter.StatusID)
	assert.Nil(t, filter.FromDate)
	assert.Empty(t, filter.Search)
}

func TestParseListFilterValues(t *testing.T) {
	values := url.Values{}
	values.Set("categoryId", "3")
	values.Set("statusId", "2")
	values.Set("executorId", "15")
	values.Set("search", "принтер")
	values.Set("sortField", "createdAt")
	values.Set("sortDirection", "desc")
	values.Set("page", "4")
	values.Set("pageSize", "25")
	values.Set("fromDate", "2025-02-01")
	values.Set("toDate", "2025-02-28")

	filter := ParseListFilter(values, 10)

	require.NotNil(t, filter.CategoryID)
	assert.Equal(t, uint64(3), *filter.CategoryID)
	require.NotNil(t, filter.StatusID)
	assert.Equal(t, uint64(2), *filter.StatusID)
	require.NotNil(t, filter.ExecutorID)
	assert.Equal(t, uint64(15), *filter.ExecutorID)
	assert.Equal(t, "принтер", filter.Search)
	assert.Equal(t, "createdAt", filter.SortField)
	assert.Equal(t, "desc", filter.SortDirection)
	assert.Equal(t, 4, filter.Page)
	assert.Equal(t, 25, filter.PageSize)

	require.NotNil(t, filter.FromDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *filter.FromDate)
	require.NotNil(t, filter.ToDate)
}

func TestParseListFilterClampsPageSize(t *testing.T) {
	values := url.Values{}
	values.Set("pageSize", "100000")

	filter := ParseListFilter(values, 10)
	assert.Equal(t, MaxPageSize, filter.PageSize)
}

func TestParseListFilterIgnoresGarbage(t *testing.T) {
	values := url.Values{}
	values.Set("categoryId", "abc")
	values.Set("page", "-5")
	values.Set("pageSize", "0")
	values.Set("fromDate", "не дата")

	filter := ParseListFilter(values, 10)

	assert.Nil(t, filter.CategoryID)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 10, filter.PageSize)
	assert.Nil(t, filter.FromDate)
}

func TestParseListFilterRFC3339Date(t *testing.T) {
	values := url.Values{}
	values.Set("fromDate", "2025-06-15T10:30:00Z")

	filter := ParseListFilter(values, 10)
	require.NotNil(t, filter.FromDate)
	assert.Equal(t, 15, filter.FromDate.Day())
}

func TestOffset(t *testing.T) {
	filter := ParseListFilter(url.Values{"page": {"3"}, "pageSize": {"5"}}, 10)
	assert.Equal(t, uint64(10), filter.Offset())
}
