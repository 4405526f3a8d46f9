// Package apperr содержит классификацию ошибок ядра плеера
package apperr

import (
	"github.com/pkg/errors"
)

// Базовые виды ошибок. Конкретные ошибки оборачивают их, поэтому проверка
// выполняется через errors.Is.
var (
	// ErrValidation - некорректный пользовательский ввод (например, пустое имя плейлиста)
	ErrValidation = errors.New("ошибка валидации")
	// ErrNotFound - операция ссылается на неизвестный трек или плейлист
	ErrNotFound = errors.New("не найдено")
	// ErrInvalidState - операция недопустима в текущем состоянии сессии воспроизведения
	ErrInvalidState = errors.New("недопустимое состояние")
	// ErrResource - ошибка аудио движка при получении или воспроизведении ресурса
	ErrResource = errors.New("ошибка аудио ресурса")
)

// Validation создает ошибку валидации
func Validation(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// NotFound создает ошибку отсутствующей сущности
func NotFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// InvalidState создает ошибку недопустимого состояния
func InvalidState(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidState, format, args...)
}

// Resource оборачивает ошибку аудио движка. Исходная ошибка сохраняется в тексте,
// а вид ошибки определяется как ErrResource.
func Resource(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return errors.Wrapf(ErrResource, format, args...)
	}
	return errors.Wrapf(&resourceError{cause: cause}, format, args...)
}

type resourceError struct {
	cause error
}

func (e *resourceError) Error() string {
	return ErrResource.Error() + ": " + e.cause.Error()
}

func (e *resourceError) Is(target error) bool {
	return target == ErrResource
}

func (e *resourceError) Unwrap() error {
	return e.cause
}

// Kind возвращает короткое имя вида ошибки для слоя представления
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrResource):
		return "resource"
	default:
		return "internal"
	}
}
