package apperror

import (
	"errors"
	"fmt"
)

// Kind класс ошибки, определяет HTTP-статус на транспортном уровне
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Error ошибка приложения с классом и сообщением для клиента
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFoundf создаёт ошибку "не найдено"
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validationf создаёт ошибку валидации входных данных
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflictf создаёт ошибку конфликта с существующими данными
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal оборачивает непредвиденную ошибку
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf возвращает класс ошибки, KindInternal для посторонних ошибок
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound проверяет что ошибка класса "не найдено"
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation проверяет что ошибка класса валидации
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsConflict проверяет что ошибка класса конфликта
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}
