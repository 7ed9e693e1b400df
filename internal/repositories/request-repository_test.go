package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-system/pkg/types"
)

func TestRequestBreakdownExcludesStatusFilter(t *testing.T) {
	categoryID := uint64(1)
	statusID := uint64(2)
	filter := types.ListFilter{
		CategoryID: &categoryID,
		StatusID:   &statusID,
		Page:       1,
		PageSize:   10,
	}

	breakdownSQL, breakdownArgs, err := requestBreakdownQuery(filter)
	require.NoError(t, err)

	// Разбивка по статусам строится без статус-фильтра, остальные
	// фильтры при этом сохраняются.
	assert.NotContains(t, breakdownSQL, "req.status_id = $")
	assert.Contains(t, breakdownSQL, "req.category_id = $1")
	assert.Contains(t, breakdownSQL, "GROUP BY s.name")
	assert.Equal(t, []interface{}{categoryID}, breakdownArgs)

	countSQL, countArgs, err := requestCountQuery(filter)
	require.NoError(t, err)
	assert.Contains(t, countSQL, "req.status_id = $2")
	assert.Equal(t, []interface{}{categoryID, statusID}, countArgs)

	pageSQL, pageArgs, err := requestPageQuery(filter)
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "req.status_id = $2")
	assert.Contains(t, pageSQL, "ORDER BY req.created_at DESC, req.id ASC")
	assert.Contains(t, pageSQL, "LIMIT 10 OFFSET 0")
	assert.Equal(t, []interface{}{categoryID, statusID}, pageArgs)
}

func TestRequestListQueriesExcludeDeleted(t *testing.T) {
	breakdownSQL, _, err := requestBreakdownQuery(types.ListFilter{})
	require.NoError(t, err)
	assert.Contains(t, breakdownSQL, "req.deleted_at IS NULL")

	pageSQL, _, err := requestPageQuery(types.ListFilter{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Contains(t, pageSQL, "req.deleted_at IS NULL")
}

func TestRequestDeleteCascadeScope(t *testing.T) {
	fileID := uint64(3)
	steps := requestDeleteCascade(11, &fileID)
	require.Len(t, steps, 3)

	assert.Contains(t, steps[0].query, "UPDATE responses")
	assert.Equal(t, []interface{}{uint64(11)}, steps[0].args)
	assert.Contains(t, steps[1].query, "UPDATE files")
	assert.Equal(t, []interface{}{fileID}, steps[1].args)
	assert.Contains(t, steps[2].query, "UPDATE requests")
	assert.Equal(t, []interface{}{uint64(11)}, steps[2].args)

	// Комментарии и история не входят в каскад.
	for _, step := range steps {
		assert.NotContains(t, step.query, "comments")
		assert.NotContains(t, step.query, "request_histories")
	}

	t.Run("без файла шаг с files отсутствует", func(t *testing.T) {
		steps := requestDeleteCascade(11, nil)
		require.Len(t, steps, 2)
		assert.Contains(t, steps[0].query, "UPDATE responses")
		assert.Contains(t, steps[1].query, "UPDATE requests")
	})
}
