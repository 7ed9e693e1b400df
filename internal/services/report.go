package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

type ReportServiceInterface interface {
	CreateReport(ctx context.Context, payload dto.CreateReportDTO) (*dto.OutReportDTO, error)
	GetReportByID(ctx context.Context, id uint64) (*dto.OutReportDTO, error)
	GetReportByRequestID(ctx context.Context, requestID uint64) (*dto.OutReportDTO, error)
	GetFilteredReports(ctx context.Context, filter types.ListFilter) (*dto.FilteredReportsDTO, error)
	ExportReports(ctx context.Context, filter types.ListFilter) (*excelize.File, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

func (s *reportService) CreateReport(ctx context.Context, payload dto.CreateReportDTO) (*dto.OutReportDTO, error) {
	created, err := s.reportRepo.CreateReport(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("отчёт создан", zap.Uint64("reportId", created.ID))
	return created, nil
}

func (s *reportService) GetReportByID(ctx context.Context, id uint64) (*dto.OutReportDTO, error) {
	report, err := s.reportRepo.FindReportByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("отчёт с id %d не найден", id)
		}
		return nil, err
	}
	return report, nil
}

// GetReportByRequestID возвращает nil без ошибки, когда у заявки нет
// отчёта: вызывающая сторона различает "нет отчёта" и сбой.
func (s *reportService) GetReportByRequestID(ctx context.Context, requestID uint64) (*dto.OutReportDTO, error) {
	return s.reportRepo.FindReportByRequestID(ctx, requestID)
}

func (s *reportService) GetFilteredReports(ctx context.Context, filter types.ListFilter) (*dto.FilteredReportsDTO, error) {
	items, total, err := s.reportRepo.GetFilteredReports(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.FilteredReportsDTO{Items: items, TotalCount: total}, nil
}

var exportHeaders = []string{
	"№", "Отправитель", "Категория", "Статус", "Исполнитель", "Заявка",
	"Создан", "Первая операция", "Время операции (мин)", "План (мин)",
	"Закрыт", "Результат", "Решение", "Канал", "Рутинный", "Код", "Первопричина",
}

// ExportReports выгружает всю отфильтрованную выборку в книгу XLSX,
// без пагинации.
func (s *reportService) ExportReports(ctx context.Context, filter types.ListFilter) (*excelize.File, error) {
	reports, err := s.reportRepo.FindReportsForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Отчёты"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка записи заголовка выгрузки: %w", err)
		}
	}

	for rowIdx, report := range reports {
		values := []any{
			report.ID,
			report.Sender,
			report.CategoryName,
			report.StatusName,
			report.Executor,
			formatOptionalID(report.RequestID),
			report.CreatedAt,
			report.FirstOperationDate,
			formatOptionalInt(report.OperationTime),
			formatOptionalInt(report.PlannedOperTime),
			report.CloseDate,
			report.Result,
			report.Solution,
			report.Channel,
			formatBool(report.Routine),
			report.Code,
			report.RootCause,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("ошибка записи строки выгрузки: %w", err)
			}
		}
	}

	s.logger.Info("сформирована выгрузка отчётов", zap.Int("rows", len(reports)))
	return f, nil
}

func formatOptionalID(id *uint64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(*id, 10)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBool(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
