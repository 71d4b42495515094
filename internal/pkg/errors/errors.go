package errors

import (
	"fmt"
)

// AppError - ошибка приложения с кодом и HTTP-статусом.
// Details заполняется по месту возникновения (например, id ребра).
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сопоставляет ошибки по коду: клоны из WithDetails совпадают
// со своими сентинелами через errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с дополнительным контекстом.
// Сентинельные ошибки из codes.go не мутируются.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Details:    details,
	}
	return clone
}
