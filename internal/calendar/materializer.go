package calendar

import (
	"sort"
	"time"

	"github.com/soundcheckk/studio_bot/internal/model"
)

type OccurrenceKind string

const (
	OccurrenceLesson OccurrenceKind = "lesson"
	OccurrenceEvent  OccurrenceKind = "event"
)

// Occurrence конкретное вхождение урока или личного события на дату сетки.
// Идентичность урока — пара (StudentID, DateKey); вхождения пересчитываются
// при каждом построении календаря и никогда не сохраняются.
type Occurrence struct {
	Kind         OccurrenceKind
	StudentID    int64  // для уроков
	EventID      string // для личных событий
	Label        string
	DateKey      string
	TimeLabel    string // исходная строка времени как ввёл пользователь
	StartMinutes int    // минуты от полуночи, UnparsedTime если не распарсилось
	Duration     string // класс длительности
	Color        string // для личных событий
}

// GridDay один день сетки месяца, включая добивочные дни соседних месяцев
type GridDay struct {
	Date        time.Time
	DateKey     string
	InMonth     bool
	Occurrences []Occurrence
}

// MonthGrid материализованная сетка месяца: целое число недель,
// выровненных по воскресеньям
type MonthGrid struct {
	Year  int
	Month time.Month
	Days  []GridDay
}

// MaterializeMonth строит сетку месяца и раскладывает по дням уроки активных
// учеников и личные события учителя. Записи с нераспознанным днём недели
// молча исключаются; остальной календарь строится как обычно.
func MaterializeMonth(year int, month time.Month, students []*model.Student, events []*model.PersonalEvent) *MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	grid := &MonthGrid{Year: year, Month: month}
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		grid.Days = append(grid.Days, GridDay{
			Date:    d,
			DateKey: DateKey(d),
			InMonth: d.Month() == month && d.Year() == year,
		})
	}

	// Уроки: один на каждый день сетки с совпадающим днём недели
	for _, st := range students {
		if !st.IsActive() {
			continue
		}
		weekday, ok := ParseWeekday(st.LessonDay)
		if !ok {
			continue
		}
		for i := range grid.Days {
			if grid.Days[i].Date.Weekday() != weekday {
				continue
			}
			grid.Days[i].Occurrences = append(grid.Days[i].Occurrences, Occurrence{
				Kind:         OccurrenceLesson,
				StudentID:    st.ID,
				Label:        st.Name,
				DateKey:      grid.Days[i].DateKey,
				TimeLabel:    st.LessonTime,
				StartMinutes: ParseClockMinutes(st.LessonTime),
				Duration:     normalizeDuration(st.LessonDuration),
			})
		}
	}

	// Личные события
	for _, ev := range events {
		materializeEvent(grid, ev, gridStart, gridEnd)
	}

	// Внутри дня сортируем по времени начала; нераспарсенные уходят в конец,
	// сохраняя относительный порядок вставки (стабильная сортировка)
	for i := range grid.Days {
		occ := grid.Days[i].Occurrences
		sort.SliceStable(occ, func(a, b int) bool {
			return occ[a].StartMinutes < occ[b].StartMinutes
		})
	}

	return grid
}

func materializeEvent(grid *MonthGrid, ev *model.PersonalEvent, gridStart, gridEnd time.Time) {
	if ev.Recurring {
		weekday, ok := ParseWeekday(ev.Day)
		if !ok {
			return
		}
		for i := range grid.Days {
			if grid.Days[i].Date.Weekday() == weekday {
				appendEventOccurrence(&grid.Days[i], ev)
			}
		}
		return
	}

	// Одноразовое событие с явной датой
	if ev.DateKey != "" {
		date, err := ParseDateKey(ev.DateKey)
		if err != nil {
			return
		}
		if date.Before(gridStart) || date.After(gridEnd) {
			return
		}
		idx := int(date.Sub(gridStart).Hours() / 24)
		if idx >= 0 && idx < len(grid.Days) {
			appendEventOccurrence(&grid.Days[idx], ev)
		}
		return
	}

	// Одноразовое событие по дню недели: ближайший такой день
	// начиная с опорной недели
	weekday, ok := ParseWeekday(ev.Day)
	if !ok {
		return
	}
	anchor := ev.StartWeek
	if anchor.IsZero() {
		anchor = gridStart
	}
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(anchor.Weekday()) + 7) % 7
	date := anchor.AddDate(0, 0, offset)
	if date.Before(gridStart) || date.After(gridEnd) {
		return
	}
	idx := int(date.Sub(gridStart).Hours() / 24)
	if idx >= 0 && idx < len(grid.Days) {
		appendEventOccurrence(&grid.Days[idx], ev)
	}
}

func appendEventOccurrence(day *GridDay, ev *model.PersonalEvent) {
	day.Occurrences = append(day.Occurrences, Occurrence{
		Kind:         OccurrenceEvent,
		EventID:      ev.ID,
		Label:        ev.Label,
		DateKey:      day.DateKey,
		TimeLabel:    ev.Time,
		StartMinutes: ParseClockMinutes(ev.Time),
		Duration:     normalizeDuration(ev.Duration),
		Color:        ev.Color,
	})
}

func normalizeDuration(durationClass string) string {
	switch durationClass {
	case model.Duration30M, model.Duration45M, model.Duration1HR:
		return durationClass
	default:
		return model.Duration30M
	}
}

// MonthLessons возвращает уроки только собственных дней месяца, без
// добивочных дней соседних месяцев. Именно этот срез агрегируется
// в посещаемость.
func (g *MonthGrid) MonthLessons() []Occurrence {
	var out []Occurrence
	for _, day := range g.Days {
		if !day.InMonth {
			continue
		}
		for _, occ := range day.Occurrences {
			if occ.Kind == OccurrenceLesson {
				out = append(out, occ)
			}
		}
	}
	return out
}

// Day возвращает день сетки по ключу даты
func (g *MonthGrid) Day(dateKey string) *GridDay {
	for i := range g.Days {
		if g.Days[i].DateKey == dateKey {
			return &g.Days[i]
		}
	}
	return nil
}

// FindLesson ищет вхождение урока по паре (studentID, dateKey)
func (g *MonthGrid) FindLesson(studentID int64, dateKey string) *Occurrence {
	day := g.Day(dateKey)
	if day == nil {
		return nil
	}
	for i := range day.Occurrences {
		occ := &day.Occurrences[i]
		if occ.Kind == OccurrenceLesson && occ.StudentID == studentID {
			return occ
		}
	}
	return nil
}
