package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/pkg/types"
)

func TestGetReportByRequestIDAbsentIsNil(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, zap.NewNop())

	report, err := svc.GetReportByRequestID(actorContext(), 10)
	require.NoError(t, err, "отсутствие отчёта не должно быть ошибкой")
	assert.Nil(t, report)
}

func TestCreateReportLinksRequest(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo, zap.NewNop())

	created, err := svc.CreateReport(actorContext(), dto.CreateReportDTO{
		SenderID:   1,
		CategoryID: 2,
		StatusID:   1,
		RequestID:  null.Uint64From(77),
	})
	require.NoError(t, err)
	require.NotNil(t, created.RequestID)
	assert.Equal(t, uint64(77), *created.RequestID)

	found, err := svc.GetReportByRequestID(actorContext(), 77)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
}

func TestExportReportsBuildsWorkbook(t *testing.T) {
	repo := newFakeReportRepo()
	operationTime := 30
	repo.exportSet = []dto.OutReportDTO{
		{
			ID:            1,
			Sender:        "Иван Иванов",
			CategoryName:  "Сеть",
			StatusName:    "Закрыта",
			Executor:      "Пётр Петров",
			CreatedAt:     "2025-03-01 10:00:00",
			OperationTime: &operationTime,
			Routine:       true,
		},
		{
			ID:           2,
			Sender:       "Анна Смирнова",
			CategoryName: "Доступы",
			StatusName:   "Новая",
		},
	}
	svc := NewReportService(repo, zap.NewNop())

	book, err := svc.ExportReports(actorContext(), types.ListFilter{})
	require.NoError(t, err)

	sheet := "Отчёты"
	header, err := book.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Отправитель", header)

	sender, err := book.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", sender)

	routine, err := book.GetCellValue(sheet, "O2")
	require.NoError(t, err)
	assert.Equal(t, "да", routine)

	secondSender, err := book.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Анна Смирнова", secondSender)
}
