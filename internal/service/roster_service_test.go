package service

import (
	"context"
	"errors"
	"testing"

	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

type fakeStudentLister struct {
	students []*model.Student
	err      error
}

func (f *fakeStudentLister) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func rosterOf(names ...string) []*model.Student {
	var out []*model.Student
	for i, name := range names {
		out = append(out, &model.Student{
			ID:     int64(i + 1),
			Name:   name,
			Status: model.StudentStatusActive,
		})
	}
	return out
}

// Ошибка загрузки реестра не затирает прежний снимок и помечает его устаревшим
func TestRosterKeepsSnapshotOnFailure(t *testing.T) {
	lister := &fakeStudentLister{students: rosterOf("Иванов", "Петров")}
	s := NewRosterService(lister, zap.NewNop())
	ctx := context.Background()

	students, stale := s.Roster(ctx, 1)
	if len(students) != 2 || stale {
		t.Fatalf("первая загрузка: %d учеников, stale=%v", len(students), stale)
	}

	lister.err = errors.New("connection reset")
	students, stale = s.Roster(ctx, 1)
	if !stale {
		t.Error("после ошибки снимок должен быть помечен устаревшим")
	}
	if len(students) != 2 {
		t.Errorf("после ошибки вернулось %d учеников, ожидали прежний снимок из 2", len(students))
	}

	// загрузка восстановилась — снимок снова свежий
	lister.err = nil
	lister.students = rosterOf("Иванов", "Петров", "Сидоров")
	students, stale = s.Roster(ctx, 1)
	if stale || len(students) != 3 {
		t.Errorf("после восстановления: %d учеников, stale=%v", len(students), stale)
	}
}

func TestRosterFailureBeforeFirstLoad(t *testing.T) {
	lister := &fakeStudentLister{err: errors.New("db down")}
	s := NewRosterService(lister, zap.NewNop())

	students, stale := s.Roster(context.Background(), 1)
	if !stale {
		t.Error("ошибка без снимка тоже помечается устаревшей")
	}
	if len(students) != 0 {
		t.Errorf("без снимка ожидали пустой реестр, получили %d", len(students))
	}
}

func TestStudentByID(t *testing.T) {
	lister := &fakeStudentLister{students: rosterOf("Иванов", "Петров")}
	s := NewRosterService(lister, zap.NewNop())

	// снимок появляется после первой загрузки
	if st := s.StudentByID(1, 1); st != nil {
		t.Error("до загрузки снимка ученика быть не должно")
	}
	s.Roster(context.Background(), 1)

	st := s.StudentByID(1, 2)
	if st == nil || st.Name != "Петров" {
		t.Fatalf("StudentByID(1, 2) = %+v, ожидали Петрова", st)
	}
	if st := s.StudentByID(1, 99); st != nil {
		t.Error("несуществующий ученик должен давать nil")
	}
	if st := s.StudentByID(2, 1); st != nil {
		t.Error("снимок другого учителя не должен участвовать в поиске")
	}
}

func TestKnownTeachers(t *testing.T) {
	lister := &fakeStudentLister{students: rosterOf("Иванов")}
	s := NewRosterService(lister, zap.NewNop())
	ctx := context.Background()

	s.Roster(ctx, 1)
	s.Roster(ctx, 7)

	known := s.KnownTeachers()
	if len(known) != 2 {
		t.Errorf("KnownTeachers вернул %d учителей, ожидали 2", len(known))
	}
}
