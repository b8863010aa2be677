package calendar

import (
	"strconv"
	"strings"
	"time"
)

// UnparsedTime сентинель для времени, которое не удалось распарсить.
// Такие занятия сортируются в конец дня.
const UnparsedTime = 1<<31 - 1

// DateKeyLayout формат ключа даты в журнале и в callback data
const DateKeyLayout = "2006-01-02"

// DateKey форматирует дату в ключ "2006-01-02"
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey разбирает ключ даты обратно в time.Time
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// ParseClockMinutes разбирает свободный формат "HH:MM AM/PM" в минуты от
// полуночи. Понимает "3:30 PM", "03:30pm", "11:00 am" и 24-часовой "15:30".
// Если строка не похожа на время, возвращает UnparsedTime.
func ParseClockMinutes(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return UnparsedTime
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "AM"))
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "PM"))
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return UnparsedTime
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return UnparsedTime
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return UnparsedTime
	}
	if minute < 0 || minute > 59 {
		return UnparsedTime
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return UnparsedTime
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return UnparsedTime
		}
		if hour != 12 {
			hour += 12
		}
	default:
		// 24-часовой формат без суффикса
		if hour < 0 || hour > 23 {
			return UnparsedTime
		}
	}

	return hour*60 + minute
}

// ParseWeekday разбирает название дня недели. Понимает полные английские
// названия и трёхбуквенные сокращения без учёта регистра.
// Нераспознанный день означает исключение записи из календаря.
func ParseWeekday(raw string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue", "tues":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu", "thurs":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return time.Sunday, false
}
