package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"HttpError напрямую", NewNotFoundError("заявка не найдена"), http.StatusNotFound},
		{"обёрнутый HttpError", fmt.Errorf("слой выше: %w", NewConflictError("дубликат")), http.StatusConflict},
		{"sentinel", ErrNotFound, http.StatusNotFound},
		{"обёрнутый sentinel", fmt.Errorf("контекст: %w", ErrBadRequest), http.StatusBadRequest},
		{"токен", ErrTokenExpired, http.StatusUnauthorized},
		{"неизвестная ошибка", fmt.Errorf("что-то пошло не так"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeFor(tc.err))
		})
	}
}

func TestHttpErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("сбой соединения")
	err := NewInternalError("Внутренняя ошибка сервера", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "сбой соединения")
}

func TestConstructorSentinels(t *testing.T) {
	assert.ErrorIs(t, NewNotFoundError("нет записи %d", 5), ErrNotFound)
	assert.ErrorIs(t, NewBadRequestError("плохой запрос"), ErrBadRequest)
	assert.ErrorIs(t, NewConflictError("конфликт"), ErrConflict)
}
