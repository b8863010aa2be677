package formatting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/model"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatUnits форматирует дробные учебные единицы: "1", "1.5", "2"
func FormatUnits(units float64) string {
	return strconv.FormatFloat(units, 'f', -1, 64)
}

// FormatDurationClass возвращает длительность класса урока текстом
func FormatDurationClass(durationClass string) string {
	return fmt.Sprintf("%d мин", calendar.DurationMinutes(durationClass))
}

// FormatMark возвращает название отметки журнала
func FormatMark(mark model.Mark) string {
	switch mark {
	case model.MarkNoShow:
		return "🚫 Пропуск"
	case model.MarkMakeup:
		return "🔁 Отработка"
	default:
		return "— нет отметки"
	}
}

// FormatTimeLabel возвращает время урока как его ввели, либо заглушку
func FormatTimeLabel(raw string) string {
	if raw == "" {
		return "время не указано"
	}
	return raw
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if int(weekday) >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if int(weekday) >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
