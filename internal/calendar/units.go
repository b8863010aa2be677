package calendar

import "github.com/soundcheckk/studio_bot/internal/model"

// LessonUnits переводит класс длительности урока в дробные "учебные единицы":
// 30 минут = 1, 45 минут = 1.5, час = 2. Вся арифметика посещаемости идёт
// в этих единицах, чтобы смешанный состав учеников суммировался осмысленно.
func LessonUnits(durationClass string) float64 {
	switch durationClass {
	case model.Duration45M:
		return 1.5
	case model.Duration1HR:
		return 2
	default:
		// неуказанный класс считаем минимальным уроком
		return 1
	}
}

// DurationMinutes возвращает длительность класса в минутах для отображения
func DurationMinutes(durationClass string) int {
	switch durationClass {
	case model.Duration45M:
		return 45
	case model.Duration1HR:
		return 60
	default:
		return 30
	}
}
