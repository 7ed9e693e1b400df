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

// DictionaryController — один контроллер на все справочники; конкретный
// справочник задаётся сервисом при сборке маршрутов.
type DictionaryController struct {
	service services.DictionaryServiceInterface
	logger  *zap.Logger
}

func NewDictionaryController(service services.DictionaryServiceInterface, logger *zap.Logger) *DictionaryController {
	return &DictionaryController{service: service, logger: logger}
}

func (c *DictionaryController) GetAll(ctx echo.Context) error {
	items, err := c.service.GetAll(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка при получении справочника", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Справочник успешно получен", items)
}

func (c *DictionaryController) Find(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	item, err := c.service.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Запись успешно получена", item)
}

func (c *DictionaryController) Create(ctx echo.Context) error {
	var payload dto.CreateLookupDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	item, err := c.service.Create(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка при создании записи справочника", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Запись успешно создана", item)
}

func (c *DictionaryController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateLookupDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.service.Update(ctx.Request().Context(), id, payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Запись успешно обновлена", echo.Map{"id": id})
}

func (c *DictionaryController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		return api.ErrorResponse(ctx, err)
	}
	return api.NoContent(ctx)
}
