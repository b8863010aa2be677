package attendance

import (
	"sort"
	"time"

	"github.com/soundcheckk/studio_bot/internal/calendar"
	"github.com/soundcheckk/studio_bot/internal/ledger"
	"github.com/soundcheckk/studio_bot/internal/model"
)

// StudentMonth помесячная сводка посещаемости одного ученика.
// Все величины в учебных единицах (30 мин = 1), кроме целых счётчиков отметок.
type StudentMonth struct {
	StudentID     int64
	Name          string
	DurationClass string
	TotalLessons  float64 // запланировано за месяц
	LessonsSoFar  float64 // прошло к сегодняшнему дню
	NoShowUnits   float64
	MakeupUnits   float64
	AttendedUnits float64
	NoShowCount   int // отметок "пропуск" за месяц
	MakeupCount   int // отметок "отработка" за месяц
}

// FlaggedUnits суммарные единицы с отметками — ключ сортировки сводки
func (m StudentMonth) FlaggedUnits() float64 {
	return m.NoShowUnits + m.MakeupUnits
}

// AggregateMonth сводит уроки месяца и отметки журнала в помесячную
// посещаемость по каждому активному ученику. Добивочные дни соседних месяцев
// в расчёт не входят. Ученики с большим числом отмеченных единиц идут первыми,
// при равенстве — по имени.
func AggregateMonth(grid *calendar.MonthGrid, store *ledger.Store, roster []*model.Student, today time.Time) []StudentMonth {
	lessons := grid.MonthLessons()

	// Число уроков за месяц и к текущей дате по каждому ученику
	totalCount := make(map[int64]int)
	soFarCount := make(map[int64]int)
	todayKey := calendar.DateKey(today)
	monthRelation := compareMonth(grid.Year, grid.Month, today)
	for _, occ := range lessons {
		totalCount[occ.StudentID]++
		switch monthRelation {
		case monthPast:
			soFarCount[occ.StudentID]++
		case monthCurrent:
			if occ.DateKey <= todayKey {
				soFarCount[occ.StudentID]++
			}
		}
	}

	// Отметки журнала, попавшие в агрегируемый месяц
	noShowMonth := make(map[int64]int)
	makeupMonth := make(map[int64]int)
	for key, mark := range store.Marks() {
		studentID, dateKey, ok := ledger.SplitKey(key)
		if !ok {
			continue
		}
		date, err := calendar.ParseDateKey(dateKey)
		if err != nil {
			continue
		}
		if date.Year() != grid.Year || date.Month() != grid.Month {
			continue
		}
		switch mark {
		case model.MarkNoShow:
			noShowMonth[studentID]++
		case model.MarkMakeup:
			makeupMonth[studentID]++
		}
	}

	var out []StudentMonth
	for _, st := range roster {
		if !st.IsActive() {
			continue
		}
		units := calendar.LessonUnits(st.LessonDuration)
		m := StudentMonth{
			StudentID:     st.ID,
			Name:          st.Name,
			DurationClass: st.LessonDuration,
			TotalLessons:  float64(totalCount[st.ID]) * units,
			LessonsSoFar:  float64(soFarCount[st.ID]) * units,
			NoShowUnits:   float64(noShowMonth[st.ID]) * units,
			MakeupUnits:   float64(makeupMonth[st.ID]) * units,
			NoShowCount:   noShowMonth[st.ID],
			MakeupCount:   makeupMonth[st.ID],
		}
		attended := m.TotalLessons - m.NoShowUnits - m.MakeupUnits
		if attended < 0 {
			attended = 0
		}
		m.AttendedUnits = attended
		out = append(out, m)
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].FlaggedUnits() != out[b].FlaggedUnits() {
			return out[a].FlaggedUnits() > out[b].FlaggedUnits()
		}
		return out[a].Name < out[b].Name
	})

	return out
}

type monthRelation int

const (
	monthPast monthRelation = iota
	monthCurrent
	monthFuture
)

func compareMonth(year int, month time.Month, today time.Time) monthRelation {
	switch {
	case year == today.Year() && month == today.Month():
		return monthCurrent
	case year > today.Year() || (year == today.Year() && month > today.Month()):
		return monthFuture
	default:
		return monthPast
	}
}
