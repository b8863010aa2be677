package viewstate

import (
	"testing"
	"time"
)

var now = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

func TestViewDefaultsToCurrentMonth(t *testing.T) {
	m := NewManager()
	v := m.View(1, now)
	if v.ActiveYear != 2026 || v.ActiveMonth != time.August {
		t.Errorf("дефолтный курсор (%d, %v), ожидали (2026, August)", v.ActiveYear, v.ActiveMonth)
	}
}

func TestShiftMonthRoundTrip(t *testing.T) {
	m := NewManager()

	v := m.ShiftMonth(1, 1, now)
	if v.ActiveYear != 2026 || v.ActiveMonth != time.September {
		t.Fatalf("после +1 курсор (%d, %v)", v.ActiveYear, v.ActiveMonth)
	}
	v = m.ShiftMonth(1, -1, now)
	if v.ActiveYear != 2026 || v.ActiveMonth != time.August {
		t.Errorf("после -1 курсор (%d, %v), ожидали исходный месяц", v.ActiveYear, v.ActiveMonth)
	}
}

func TestShiftMonthAcrossYear(t *testing.T) {
	m := NewManager()
	dec := time.Date(2026, time.December, 10, 0, 0, 0, 0, time.UTC)

	v := m.ShiftMonth(1, 1, dec)
	if v.ActiveYear != 2027 || v.ActiveMonth != time.January {
		t.Errorf("декабрь +1 = (%d, %v), ожидали (2027, January)", v.ActiveYear, v.ActiveMonth)
	}

	m.Clear(1)
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	v = m.ShiftMonth(1, -1, jan)
	if v.ActiveYear != 2025 || v.ActiveMonth != time.December {
		t.Errorf("январь -1 = (%d, %v), ожидали (2025, December)", v.ActiveYear, v.ActiveMonth)
	}
}

func TestShiftMonthClearsSelection(t *testing.T) {
	m := NewManager()
	m.SelectDay(1, "2026-08-12", now)
	m.SelectLesson(1, 7, "2026-08-12", now)

	v := m.ShiftMonth(1, 1, now)
	if v.SelectedDay != "" || v.SelectedStudent != 0 || v.SelectedLesson != "" {
		t.Errorf("сдвиг месяца должен сбрасывать выбор, получили %+v", v)
	}
}

func TestResetToCurrentMonth(t *testing.T) {
	m := NewManager()
	m.ShiftMonth(1, 5, now)

	v := m.ResetToCurrentMonth(1, now)
	if v.ActiveYear != 2026 || v.ActiveMonth != time.August {
		t.Errorf("после сброса курсор (%d, %v), ожидали текущий месяц", v.ActiveYear, v.ActiveMonth)
	}
}

func TestSelectAndCloseDetail(t *testing.T) {
	m := NewManager()

	v := m.SelectDay(1, "2026-08-12", now)
	if v.SelectedDay != "2026-08-12" {
		t.Fatalf("SelectedDay = %q", v.SelectedDay)
	}

	v = m.SelectLesson(1, 7, "2026-08-12", now)
	if v.SelectedStudent != 7 || v.SelectedLesson != "2026-08-12" {
		t.Fatalf("выбор урока не сохранился: %+v", v)
	}

	v = m.CloseDetail(1, now)
	if v.SelectedDay != "" || v.SelectedStudent != 0 || v.SelectedLesson != "" {
		t.Errorf("CloseDetail должен очистить выбор, получили %+v", v)
	}
	// курсор месяца не трогается
	if v.ActiveYear != 2026 || v.ActiveMonth != time.August {
		t.Errorf("CloseDetail сдвинул курсор: (%d, %v)", v.ActiveYear, v.ActiveMonth)
	}
}

func TestViewsIsolatedPerTeacher(t *testing.T) {
	m := NewManager()
	m.ShiftMonth(1, 3, now)

	v := m.View(2, now)
	if v.ActiveMonth != time.August {
		t.Errorf("состояние чужого учителя просочилось: %v", v.ActiveMonth)
	}
}
