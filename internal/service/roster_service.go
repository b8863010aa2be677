package service

import (
	"context"
	"sync"

	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

// StudentLister источник реестра учеников
type StudentLister interface {
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Student, error)
}

// RosterService держит снимок реестра учеников по каждому учителю.
// Неудачная загрузка оставляет прежний снимок: календарь строится по тому,
// что есть, с ненавязчивой пометкой "данные устарели" вместо падения.
type RosterService struct {
	studentRepo StudentLister
	logger      *zap.Logger

	mu    sync.RWMutex
	cache map[int64][]*model.Student
	stale map[int64]bool // последняя загрузка не удалась
}

// NewRosterService создаёт новый сервис реестра
func NewRosterService(studentRepo StudentLister, logger *zap.Logger) *RosterService {
	return &RosterService{
		studentRepo: studentRepo,
		logger:      logger,
		cache:       make(map[int64][]*model.Student),
		stale:       make(map[int64]bool),
	}
}

// Roster возвращает реестр учителя и признак устаревания снимка.
// Свежая загрузка при каждом обращении; при ошибке — прежний снимок
// (или пустой, если его ещё не было) и stale=true.
func (s *RosterService) Roster(ctx context.Context, teacherID int64) ([]*model.Student, bool) {
	students, err := s.studentRepo.GetByTeacherID(ctx, teacherID)
	if err != nil {
		s.logger.Warn("Roster fetch failed, keeping previous snapshot",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))

		s.mu.Lock()
		s.stale[teacherID] = true
		cached := s.cache[teacherID]
		s.mu.Unlock()
		return cached, true
	}

	s.mu.Lock()
	s.cache[teacherID] = students
	s.stale[teacherID] = false
	s.mu.Unlock()
	return students, false
}

// Refresh обновляет снимок реестра в фоне. Гонка с правкой журнала
// безобидна: агрегация всегда пересчитывается от текущего снимка.
func (s *RosterService) Refresh(ctx context.Context, teacherID int64) {
	_, _ = s.Roster(ctx, teacherID)
}

// KnownTeachers возвращает учителей, для которых уже держим снимок
func (s *RosterService) KnownTeachers() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int64, 0, len(s.cache))
	for id := range s.cache {
		out = append(out, id)
	}
	return out
}

// StudentByID ищет ученика в текущем снимке реестра
func (s *RosterService) StudentByID(teacherID, studentID int64) *model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.cache[teacherID] {
		if st.ID == studentID {
			return st
		}
	}
	return nil
}
