package ledger

import (
	"strconv"
	"strings"

	"github.com/soundcheckk/studio_bot/internal/model"
)

// Store журнал посещаемости одного учителя: отметки по конкретным урокам
// плюс накопительные счётчики по ученикам. Все мутации проходят только через
// SetMark и ClearMark, поэтому счётчики структурно не могут разойтись
// с картой отметок.
type Store struct {
	marks  map[string]model.Mark
	noShow map[int64]int // пропуски по ученикам
	owed   map[int64]int // долги по отработкам
}

// NewStore создаёт пустой журнал
func NewStore() *Store {
	return &Store{
		marks:  make(map[string]model.Mark),
		noShow: make(map[int64]int),
		owed:   make(map[int64]int),
	}
}

// Restore восстанавливает журнал из снимка. Счётчики пересчитываются
// заново из карты отметок, а не читаются из снимка: так повреждённые или
// устаревшие счётчики не могут пережить загрузку.
func Restore(snap model.LedgerSnapshot) *Store {
	s := NewStore()
	for key, mark := range snap.MarksByLesson {
		studentID, ok := studentFromKey(key)
		if !ok {
			continue
		}
		switch mark {
		case model.MarkNoShow:
			s.marks[key] = mark
			s.noShow[studentID]++
		case model.MarkMakeup:
			s.marks[key] = mark
			s.owed[studentID]++
		}
	}
	return s
}

// SetMark ставит отметку на урок (studentID, dateKey). Повторная установка
// той же отметки — no-op. Смена категории сначала откатывает счётчик прежней
// отметки и только потом увеличивает новый. Возвращает true, если состояние
// изменилось.
func (s *Store) SetMark(studentID int64, dateKey string, mark model.Mark) bool {
	if mark == model.MarkNone {
		return s.ClearMark(studentID, dateKey)
	}

	key := model.LessonKey(studentID, dateKey)
	prev := s.marks[key]
	if prev == mark {
		return false
	}

	if prev != model.MarkNone {
		s.decrement(studentID, prev)
	}
	s.increment(studentID, mark)
	s.marks[key] = mark
	return true
}

// ClearMark снимает отметку с урока. Если отметки нет — no-op.
// Возвращает true, если состояние изменилось.
func (s *Store) ClearMark(studentID int64, dateKey string) bool {
	key := model.LessonKey(studentID, dateKey)
	prev, exists := s.marks[key]
	if !exists {
		return false
	}
	s.decrement(studentID, prev)
	delete(s.marks, key)
	return true
}

// Mark возвращает текущую отметку урока или MarkNone
func (s *Store) Mark(studentID int64, dateKey string) model.Mark {
	return s.marks[model.LessonKey(studentID, dateKey)]
}

// NoShowCount накопительный счётчик пропусков ученика
func (s *Store) NoShowCount(studentID int64) int {
	return s.noShow[studentID]
}

// MakeupOwedCount накопительный счётчик долгов по отработкам
func (s *Store) MakeupOwedCount(studentID int64) int {
	return s.owed[studentID]
}

// Len количество отметок в журнале
func (s *Store) Len() int {
	return len(s.marks)
}

// Marks возвращает копию карты отметок
func (s *Store) Marks() map[string]model.Mark {
	out := make(map[string]model.Mark, len(s.marks))
	for k, v := range s.marks {
		out[k] = v
	}
	return out
}

// Snapshot собирает сериализуемый снимок журнала для сохранения
func (s *Store) Snapshot() model.LedgerSnapshot {
	snap := model.LedgerSnapshot{
		OwedByStudent:   make(map[int64]int, len(s.owed)),
		NoShowByStudent: make(map[int64]int, len(s.noShow)),
		MarksByLesson:   make(map[string]model.Mark, len(s.marks)),
	}
	for k, v := range s.owed {
		if v > 0 {
			snap.OwedByStudent[k] = v
		}
	}
	for k, v := range s.noShow {
		if v > 0 {
			snap.NoShowByStudent[k] = v
		}
	}
	for k, v := range s.marks {
		snap.MarksByLesson[k] = v
	}
	return snap
}

func (s *Store) increment(studentID int64, mark model.Mark) {
	switch mark {
	case model.MarkNoShow:
		s.noShow[studentID]++
	case model.MarkMakeup:
		s.owed[studentID]++
	}
}

func (s *Store) decrement(studentID int64, mark model.Mark) {
	// пол на нуле: счётчик не может уйти в минус
	switch mark {
	case model.MarkNoShow:
		if s.noShow[studentID] > 0 {
			s.noShow[studentID]--
		}
	case model.MarkMakeup:
		if s.owed[studentID] > 0 {
			s.owed[studentID]--
		}
	}
}

// SplitKey разбирает ключ записи журнала "{studentID}|{dateKey}"
func SplitKey(key string) (studentID int64, dateKey string, ok bool) {
	idx := strings.IndexByte(key, '|')
	if idx <= 0 || idx == len(key)-1 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(key[:idx], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, key[idx+1:], true
}

func studentFromKey(key string) (int64, bool) {
	id, _, ok := SplitKey(key)
	return id, ok
}
