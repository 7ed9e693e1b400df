package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/api"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

const defaultRequestsPageSize = 10

type RequestController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(
	requestService services.RequestServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseListFilter(ctx.Request().URL.Query(), defaultRequestsPageSize)

	res, err := c.requestService.GetFilteredRequests(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка заявок", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Заявки успешно получены", res)
}

// FindRequest отдаёт карточку заявки. Query-параметр section управляет
// догружаемыми частями: request, comment, history, requestinfo.
func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	section := ctx.QueryParam("section")
	res, err := c.requestService.GetRequestBySection(ctx.Request().Context(), id, section)
	if err != nil {
		c.logger.Error("Ошибка при получении заявки", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Заявка успешно получена", res)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	file, err := bindMultipartPayload(ctx, &payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	details, err := c.requestService.CreateRequest(ctx.Request().Context(), payload, file)
	if err != nil {
		c.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Заявка успешно создана", details)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateRequestDTO
	file, err := bindMultipartPayload(ctx, &payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.requestService.UpdateRequest(ctx.Request().Context(), id, payload, file); err != nil {
		c.logger.Error("Ошибка при обновлении заявки", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Заявка успешно обновлена", echo.Map{"id": id})
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.requestService.DeleteRequest(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Ошибка при удалении заявки", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.NoContent(ctx)
}

func (c *RequestController) ChangeStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.ChangeRequestStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.requestService.ChangeStatus(ctx.Request().Context(), id, payload.StatusID); err != nil {
		c.logger.Error("Ошибка при смене статуса заявки", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Статус заявки успешно изменён", echo.Map{"id": id})
}

func (c *RequestController) TakeRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.requestService.TakeRequest(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Ошибка при взятии заявки в работу", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Заявка взята в работу", echo.Map{"id": id})
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError("некорректный формат id")
	}
	return id, nil
}

// bindMultipartPayload разбирает multipart-форму с JSON в поле "data" и
// необязательным файлом в поле "file".
func bindMultipartPayload(ctx echo.Context, payload any) (*multipart.FileHeader, error) {
	dataString := ctx.FormValue("data")
	if dataString == "" {
		return nil, apperrors.NewBadRequestError("поле 'data' с JSON данными не найдено")
	}
	if err := json.Unmarshal([]byte(dataString), payload); err != nil {
		return nil, apperrors.NewBadRequestError("некорректный JSON в поле 'data'")
	}
	if err := ctx.Validate(payload); err != nil {
		return nil, err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("не удалось прочитать файл из формы")
	}
	return fileHeader, nil
}
