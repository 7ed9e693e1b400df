package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/api"
)

type CommentController struct {
	commentService services.CommentServiceInterface
	logger         *zap.Logger
}

func NewCommentController(
	commentService services.CommentServiceInterface,
	logger *zap.Logger,
) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

func (c *CommentController) CreateComment(ctx echo.Context) error {
	var payload dto.CreateCommentDTO
	attachment, err := bindMultipartPayload(ctx, &payload)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	newID, err := c.commentService.CreateComment(ctx.Request().Context(), payload, attachment)
	if err != nil {
		c.logger.Error("Ошибка при создании комментария", zap.Uint64("requestId", payload.RequestID), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Комментарий успешно создан", echo.Map{"id": newID})
}

func (c *CommentController) GetCommentsByRequestID(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	comments, err := c.commentService.GetCommentsByRequestID(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("Ошибка при получении комментариев", zap.Uint64("requestId", id), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Комментарии успешно получены", comments)
}
