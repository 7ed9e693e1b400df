package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Авторизация и токены
	ErrInvalidSigningMethod = errors.New("неверный метод подписи токена")
	ErrInvalidToken         = errors.New("недопустимый токен")
	ErrTokenExpired         = errors.New("срок действия токена истёк")
	ErrTokenIsNotRefresh    = errors.New("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = errors.New("токен не является access-токеном")
	ErrEmptyAuthHeader      = errors.New("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader    = errors.New("неверный формат заголовка авторизации")
	ErrInvalidCredentials   = errors.New("неверные учётные данные")
	ErrUnauthorized         = errors.New("неавторизован")
	ErrForbidden            = errors.New("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = errors.New("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = errors.New("запись не найдена")
	ErrBadRequest = errors.New("неверный запрос")
	ErrConflict   = errors.New("конфликт данных")
)

// HttpError несёт пользовательское сообщение и HTTP-код; техническая
// причина остаётся в Err и попадает только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

func NewBadRequestError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Err: ErrBadRequest}
}

func NewConflictError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...), Err: ErrConflict}
}

func NewServiceUnavailableError(message string, err error) *HttpError {
	return &HttpError{Code: http.StatusServiceUnavailable, Message: message, Err: err}
}

func NewInternalError(message string, err error) *HttpError {
	return &HttpError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Коды для sentinel-ошибок, когда до HttpError дело не дошло.
var sentinelCodes = map[error]int{
	ErrNotFound:           http.StatusNotFound,
	ErrBadRequest:         http.StatusBadRequest,
	ErrConflict:           http.StatusConflict,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrEmptyAuthHeader:    http.StatusUnauthorized,
	ErrInvalidAuthHeader:  http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrTokenIsNotAccess:   http.StatusUnauthorized,
	ErrTokenIsNotRefresh:  http.StatusUnauthorized,
}

// CodeFor возвращает HTTP-код для произвольной ошибки.
func CodeFor(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	for sentinel, code := range sentinelCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}
