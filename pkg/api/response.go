package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T               `json:"list"`
	Pagination *types.Pagination `json:"pagination"`
}

// SuccessOne — для возврата одного объекта.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body: ListBody[T]{
			List: list,
			Pagination: &types.Pagination{
				TotalCount: total,
				TotalPages: totalPages,
				Page:       page,
				Limit:      limit,
			},
		},
	})
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// ErrorResponse — единственная точка, где ошибка превращается в HTTP-ответ.
func ErrorResponse(c echo.Context, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, Response[any]{
			Status:  false,
			Message: httpErr.Message,
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, Response[any]{
			Status:  false,
			Message: "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	code := apperrors.CodeFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Внутренняя ошибка сервера"
	}
	return c.JSON(code, Response[any]{
		Status:  false,
		Message: message,
	})
}
