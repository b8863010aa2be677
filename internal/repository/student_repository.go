package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

// StudentRepository читает реестр учеников из базы данных. Реестр для этого
// модуля read-only: записи ведёт внешняя админка студии. Поля дня/времени/
// длительности хранятся как свободный текст: валидация происходит при
// материализации календаря, а не на границе хранилища.
type StudentRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewStudentRepository создаёт новый репозиторий
func NewStudentRepository(pool *pgxpool.Pool, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{
		pool:   pool,
		logger: logger,
	}
}

// GetByTeacherID получает весь реестр учеников учителя
func (r *StudentRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*model.Student, error) {
	query := `
		SELECT id, teacher_id, name, email, level, status, lesson_day, lesson_time, lesson_duration, created_at
		FROM students
		WHERE teacher_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get students by teacher: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student := &model.Student{}
		err := rows.Scan(
			&student.ID,
			&student.TeacherID,
			&student.Name,
			&student.Email,
			&student.Level,
			&student.Status,
			&student.LessonDay,
			&student.LessonTime,
			&student.LessonDuration,
			&student.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	// обрыв выборки посреди итерации не должен сойти за укороченный реестр
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}
