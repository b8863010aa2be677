package viewstate

import (
	"sync"
	"time"
)

// View явное состояние календаря одного учителя: курсор активного месяца
// (всегда нормализован к 1-му числу), выбранный день и выбранный урок.
// Никаких глобалов — состояние передаётся явно в материализацию и агрегацию.
type View struct {
	ActiveYear      int        `json:"active_year"`
	ActiveMonth     time.Month `json:"active_month"`
	SelectedDay     string     `json:"selected_day,omitempty"`     // dateKey
	SelectedStudent int64      `json:"selected_student,omitempty"` // урок = (ученик, дата)
	SelectedLesson  string     `json:"selected_lesson,omitempty"`  // dateKey урока
}

// Manager хранит состояния календаря по учителям
type Manager struct {
	mu    sync.RWMutex
	views map[int64]*View // telegramID -> View
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{views: make(map[int64]*View)}
}

// View возвращает состояние учителя; по умолчанию курсор на текущем месяце
func (m *Manager) View(teacherID int64, now time.Time) View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v, exists := m.views[teacherID]; exists {
		return *v
	}
	return View{ActiveYear: now.Year(), ActiveMonth: now.Month()}
}

// ShiftMonth сдвигает курсор ровно на delta календарных месяцев.
// Нормализация к 1-му числу снимает неоднозначность вида "31 января + месяц".
func (m *Manager) ShiftMonth(teacherID int64, delta int, now time.Time) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.ensure(teacherID, now)
	shifted := time.Date(v.ActiveYear, v.ActiveMonth+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	v.ActiveYear = shifted.Year()
	v.ActiveMonth = shifted.Month()
	v.SelectedDay = ""
	v.SelectedStudent = 0
	v.SelectedLesson = ""
	return *v
}

// ResetToCurrentMonth возвращает курсор на текущий месяц
func (m *Manager) ResetToCurrentMonth(teacherID int64, now time.Time) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.ensure(teacherID, now)
	v.ActiveYear = now.Year()
	v.ActiveMonth = now.Month()
	v.SelectedDay = ""
	v.SelectedStudent = 0
	v.SelectedLesson = ""
	return *v
}

// SelectDay открывает панель дня
func (m *Manager) SelectDay(teacherID int64, dateKey string, now time.Time) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.ensure(teacherID, now)
	v.SelectedDay = dateKey
	v.SelectedStudent = 0
	v.SelectedLesson = ""
	return *v
}

// SelectLesson открывает панель урока (ученик + дата)
func (m *Manager) SelectLesson(teacherID int64, studentID int64, dateKey string, now time.Time) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.ensure(teacherID, now)
	v.SelectedStudent = studentID
	v.SelectedLesson = dateKey
	return *v
}

// CloseDetail закрывает панели дня и урока, не трогая курсор месяца
func (m *Manager) CloseDetail(teacherID int64, now time.Time) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.ensure(teacherID, now)
	v.SelectedDay = ""
	v.SelectedStudent = 0
	v.SelectedLesson = ""
	return *v
}

// Clear сбрасывает состояние учителя
func (m *Manager) Clear(teacherID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.views, teacherID)
}

func (m *Manager) ensure(teacherID int64, now time.Time) *View {
	if v, exists := m.views[teacherID]; exists {
		return v
	}
	v := &View{ActiveYear: now.Year(), ActiveMonth: now.Month()}
	m.views[teacherID] = v
	return v
}
