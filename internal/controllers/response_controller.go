package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/api"
	apperrors "helpdesk-system/pkg/errors"
)

type ResponseController struct {
	responseService services.ResponseServiceInterface
	logger          *zap.Logger
}

func NewResponseController(
	responseService services.ResponseServiceInterface,
	logger *zap.Logger,
) *ResponseController {
	return &ResponseController{
		responseService: responseService,
		logger:          logger,
	}
}

func (c *ResponseController) CreateResponse(ctx echo.Context) error {
	var payload dto.CreateResponseDTO
	file, err := bindMultipartPayload(ctx, &payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	newID, err := c.responseService.CreateResponse(ctx.Request().Context(), payload, file)
	if err != nil {
		c.logger.Error("Ошибка при создании ответа", zap.Uint64("requestId", payload.RequestID), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Ответ успешно создан", echo.Map{"id": newID})
}

func (c *ResponseController) ChangeStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.ChangeResponseStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.responseService.ChangeResponseStatus(ctx.Request().Context(), id, payload.StatusID); err != nil {
		c.logger.Error("Ошибка при смене статуса ответа", zap.Uint64("responseId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Статус ответа успешно изменён", echo.Map{"id": id})
}

func (c *ResponseController) DeleteResponse(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.responseService.DeleteResponse(ctx.Request().Context(), id); err != nil {
		c.logger.Error("Ошибка при удалении ответа", zap.Uint64("responseId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.NoContent(ctx)
}

func (c *ResponseController) GetResponseByRequestID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.responseService.GetResponseByRequestID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Ошибка при получении ответа", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Ответ успешно получен", res)
}
