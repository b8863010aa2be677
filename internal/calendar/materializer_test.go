package calendar

import (
	"testing"
	"time"

	"github.com/soundcheckk/studio_bot/internal/model"
)

func activeStudent(id int64, name, day, lessonTime, duration string) *model.Student {
	return &model.Student{
		ID:             id,
		Name:           name,
		Status:         model.StudentStatusActive,
		LessonDay:      day,
		LessonTime:     lessonTime,
		LessonDuration: duration,
	}
}

// Сетка месяца: целое число недель, воскресенье в начале, суббота в конце,
// все дни месяца присутствуют ровно один раз.
func TestMaterializeMonthGridShape(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		grid := MaterializeMonth(2026, month, nil, nil)

		if len(grid.Days)%7 != 0 {
			t.Errorf("%v: дней в сетке %d, не кратно 7", month, len(grid.Days))
		}
		if got := grid.Days[0].Date.Weekday(); got != time.Sunday {
			t.Errorf("%v: сетка начинается с %v, ожидали воскресенье", month, got)
		}
		if got := grid.Days[len(grid.Days)-1].Date.Weekday(); got != time.Saturday {
			t.Errorf("%v: сетка кончается %v, ожидали субботу", month, got)
		}

		inMonth := 0
		for _, day := range grid.Days {
			if day.InMonth {
				inMonth++
			}
		}
		want := time.Date(2026, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
		if inMonth != want {
			t.Errorf("%v: дней месяца в сетке %d, ожидали %d", month, inMonth, want)
		}
	}
}

func TestMaterializeMonthLessons(t *testing.T) {
	students := []*model.Student{
		activeStudent(1, "Иванов", "Monday", "3:30 PM", model.Duration30M),
		// на паузе — не попадает в календарь
		{ID: 2, Name: "Петров", Status: model.StudentStatusPaused, LessonDay: "Monday"},
		// нераспознанный день — молча исключается
		activeStudent(3, "Сидоров", "Понедельник", "4:00 PM", model.Duration45M),
	}

	grid := MaterializeMonth(2026, time.August, students, nil)

	lessons := grid.MonthLessons()
	// понедельники августа 2026: 3, 10, 17, 24, 31
	if len(lessons) != 5 {
		t.Fatalf("уроков за месяц %d, ожидали 5", len(lessons))
	}
	for _, occ := range lessons {
		if occ.StudentID != 1 {
			t.Errorf("урок ученика %d, ожидали только ученика 1", occ.StudentID)
		}
		if occ.StartMinutes != 15*60+30 {
			t.Errorf("StartMinutes = %d, ожидали %d", occ.StartMinutes, 15*60+30)
		}
	}

	if occ := grid.FindLesson(1, "2026-08-10"); occ == nil {
		t.Error("не нашли урок ученика 1 на 2026-08-10")
	}
	if occ := grid.FindLesson(1, "2026-08-11"); occ != nil {
		t.Error("нашли урок на вторник, которого не должно быть")
	}
}

func TestMaterializeRecurringEvent(t *testing.T) {
	events := []*model.PersonalEvent{
		{ID: "e1", Label: "Оркестр", Recurring: true, Day: "Wednesday", Time: "6:00 PM"},
	}

	grid := MaterializeMonth(2026, time.August, nil, events)

	// среды сетки, включая добивочные: 29.07, 5, 12, 19, 26.08, 2.09
	count := 0
	for _, day := range grid.Days {
		for _, occ := range day.Occurrences {
			if occ.Kind != OccurrenceEvent {
				t.Fatalf("неожиданный вид вхождения %q", occ.Kind)
			}
			if day.Date.Weekday() != time.Wednesday {
				t.Errorf("событие на %v, ожидали среду", day.Date.Weekday())
			}
			count++
		}
	}
	if count != 6 {
		t.Errorf("вхождений события %d, ожидали 6", count)
	}
}

func TestMaterializeOneOffEvent(t *testing.T) {
	events := []*model.PersonalEvent{
		{ID: "e1", Label: "Концерт", DateKey: "2026-08-12"},
		{ID: "e2", Label: "За сеткой", DateKey: "2026-10-01"},
	}

	grid := MaterializeMonth(2026, time.August, nil, events)

	day := grid.Day("2026-08-12")
	if day == nil {
		t.Fatal("не нашли день 2026-08-12")
	}
	if len(day.Occurrences) != 1 || day.Occurrences[0].EventID != "e1" {
		t.Fatalf("на 2026-08-12 вхождения %v, ожидали одно событие e1", day.Occurrences)
	}

	total := 0
	for _, d := range grid.Days {
		total += len(d.Occurrences)
	}
	if total != 1 {
		t.Errorf("всего вхождений %d, событие за сеткой не должно материализоваться", total)
	}
}

func TestMaterializeOneOffEventByWeekday(t *testing.T) {
	// опорная неделя: понедельник 10 августа, событие в пятницу — 14 августа
	anchor := time.Date(2026, time.August, 10, 15, 0, 0, 0, time.UTC)
	events := []*model.PersonalEvent{
		{ID: "e1", Label: "Прослушивание", Day: "Friday", StartWeek: anchor},
	}

	grid := MaterializeMonth(2026, time.August, nil, events)

	day := grid.Day("2026-08-14")
	if day == nil || len(day.Occurrences) != 1 {
		t.Fatal("событие не материализовалось на 2026-08-14")
	}
}

// Занятия дня сортируются по времени начала, нераспарсенное время в конце,
// при равенстве порядок вставки сохраняется.
func TestMaterializeDaySorting(t *testing.T) {
	students := []*model.Student{
		activeStudent(1, "Вечерний", "Monday", "3:30 PM", model.Duration30M),
		activeStudent(2, "Без времени", "Monday", "как получится", model.Duration30M),
		activeStudent(3, "Утренний", "Monday", "9:00 AM", model.Duration30M),
	}

	grid := MaterializeMonth(2026, time.August, students, nil)

	day := grid.Day("2026-08-03")
	if day == nil || len(day.Occurrences) != 3 {
		t.Fatal("ожидали три занятия на 2026-08-03")
	}
	order := []int64{3, 1, 2}
	for i, want := range order {
		if day.Occurrences[i].StudentID != want {
			t.Errorf("позиция %d: ученик %d, ожидали %d", i, day.Occurrences[i].StudentID, want)
		}
	}
	if day.Occurrences[2].StartMinutes != UnparsedTime {
		t.Errorf("нераспарсенное время = %d, ожидали сентинель", day.Occurrences[2].StartMinutes)
	}
}

func TestNormalizeDurationDefaults(t *testing.T) {
	students := []*model.Student{
		activeStudent(1, "Иванов", "Monday", "3:30 PM", "полтора часа"),
	}
	grid := MaterializeMonth(2026, time.August, students, nil)
	occ := grid.FindLesson(1, "2026-08-03")
	if occ == nil {
		t.Fatal("урок не материализовался")
	}
	if occ.Duration != model.Duration30M {
		t.Errorf("Duration = %q, ожидали дефолт %q", occ.Duration, model.Duration30M)
	}
}
