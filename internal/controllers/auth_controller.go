package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/api"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	userService services.UserServiceInterface,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var payload dto.RegisterDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.authService.Register(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("Ошибка при регистрации", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusCreated, "Пользователь успешно зарегистрирован", res)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("Неудачная попытка входа", zap.String("email", payload.Email), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Вход выполнен успешно", res)
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.authService.RefreshToken(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Warn("Ошибка обновления токена", zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Токены успешно обновлены", res)
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return api.ErrorResponse(ctx, apperrors.NewBadRequestError("некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return api.ErrorResponse(ctx, err)
	}

	if err := c.authService.ChangePassword(ctx.Request().Context(), userID, payload); err != nil {
		c.logger.Warn("Ошибка смены пароля", zap.Uint64("userId", userID), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Пароль успешно изменён", echo.Map{"id": userID})
}

func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return api.ErrorResponse(ctx, err)
	}

	res, err := c.userService.GetProfile(ctx.Request().Context(), userID)
	if err != nil {
		c.logger.Error("Ошибка при получении профиля", zap.Uint64("userId", userID), zap.Error(err))
		return api.ErrorResponse(ctx, err)
	}

	return api.SuccessOne(ctx, http.StatusOK, "Профиль успешно получен", res)
}
