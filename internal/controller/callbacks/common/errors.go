package common

import (
	"errors"

	"github.com/soundcheckk/studio_bot/internal/metrics"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrStudentNotFound = errors.New("student not found")
	ErrLessonNotFound  = errors.New("lesson occurrence not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrDayNotFound     = errors.New("grid day not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Каждый вызов — ошибка обработчика, показанная пользователю,
// здесь же она и учитывается в метриках.
func ErrorMessage(err error) string {
	metrics.HandlerErrors.Inc()

	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrStudentNotFound):
		return "❌ Ученик не найден"
	case errors.Is(err, ErrLessonNotFound):
		return "❌ Урок не найден в этом месяце"
	case errors.Is(err, ErrEventNotFound):
		return "❌ Событие не найдено"
	case errors.Is(err, ErrDayNotFound):
		return "❌ День не найден в сетке месяца"
	default:
		return "❌ Произошла ошибка"
	}
}
