package attendance

import "time"

// summaryDisplayCap потолок для сводных единиц текущего месяца.
// Страховка от раздутых демо-данных в витрине; применяется только при показе
// текущего календарного месяца и никогда не трогает поимённые цифры и журнал.
const summaryDisplayCap = 200.0

// StudioSummary сводные показатели студии за месяц
type StudioSummary struct {
	ActiveStudents int
	ScheduledUnits float64
	AttendedUnits  float64
}

// Summarize сворачивает помесячные сводки учеников в показатели студии.
// Для текущего календарного месяца единицы ограничиваются потолком витрины.
func Summarize(perStudent []StudentMonth, year int, month time.Month, today time.Time) StudioSummary {
	sum := StudioSummary{ActiveStudents: len(perStudent)}
	for _, m := range perStudent {
		sum.ScheduledUnits += m.TotalLessons
		sum.AttendedUnits += m.AttendedUnits
	}

	if compareMonth(year, month, today) == monthCurrent {
		if sum.ScheduledUnits > summaryDisplayCap {
			sum.ScheduledUnits = summaryDisplayCap
		}
		if sum.AttendedUnits > summaryDisplayCap {
			sum.AttendedUnits = summaryDisplayCap
		}
	}

	return sum
}
