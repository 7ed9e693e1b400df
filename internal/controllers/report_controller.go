package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/api"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

const defaultReportsPageSize = 5

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

func (c *ReportController) GetReports(ctx echo.Context) error {
	filter := utils.ParseListFilter(ctx.Request().URL.Query(), defaultReportsPageSize)

	res, err := c.reportService.GetFilteredReports(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка отчётов", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessList(ctx, "Отчёты успешно получены", res.Items, res.TotalCount, filter.Page, filter.PageSize)
}

func (c *ReportController) FindReport(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.reportService.GetReportByID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Ошибка при получении отчёта", zap.Uint64("reportId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Отчёт успешно получен", res)
}

// FindReportByRequest отдаёт свежайший отчёт по заявке; отсутствие
// отчёта — не ошибка, в теле приходит null.
func (c *ReportController) FindReportByRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.reportService.GetReportByRequestID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Ошибка при получении отчёта по заявке", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Отчёт успешно получен", res)
}

func (c *ReportController) CreateReport(ctx echo.Context) error {
	var payload dto.CreateReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.reportService.CreateReport(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка при создании отчёта", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Отчёт успешно создан", res)
}

// ExportReports стримит XLSX-файл со всей отфильтрованной выборкой.
func (c *ReportController) ExportReports(ctx echo.Context) error {
	filter := utils.ParseListFilter(ctx.Request().URL.Query(), defaultReportsPageSize)

	book, err := c.reportService.ExportReports(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Ошибка при выгрузке отчётов", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	fileName := fmt.Sprintf("reports-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := book.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("Ошибка при записи XLSX в ответ", zap.Error(err))
		return err
	}
	return nil
}
