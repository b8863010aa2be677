package model

import "time"

type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusPaused   StudentStatus = "Paused"
	StudentStatusArchived StudentStatus = "Archived"
)

// Классы длительности урока
const (
	Duration30M = "30M"
	Duration45M = "45M"
	Duration1HR = "1HR"
)

// Student представляет ученика студии с его еженедельным слотом
type Student struct {
	ID             int64         `json:"id"`
	TeacherID      int64         `json:"teacher_id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Level          string        `json:"level"`           // уровень подготовки, свободный текст
	Status         StudentStatus `json:"status"`          // только Active участвует в календаре
	LessonDay      string        `json:"lesson_day"`      // день недели, например "Monday"
	LessonTime     string        `json:"lesson_time"`     // свободный формат "HH:MM AM/PM"
	LessonDuration string        `json:"lesson_duration"` // 30M | 45M | 1HR
	CreatedAt      time.Time     `json:"created_at"`
}

// IsActive проверяет участвует ли ученик в материализации календаря
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
