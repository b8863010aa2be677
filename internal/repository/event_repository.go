package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soundcheckk/studio_bot/internal/model"
	"go.uber.org/zap"
)

// EventRepository хранит личные события учителя одной jsonb-записью на
// учителя. Отсутствие или порча записи означает "событий нет", а не ошибку:
// календарь должен строиться всегда.
type EventRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewEventRepository создаёт новый репозиторий
func NewEventRepository(pool *pgxpool.Pool, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		pool:   pool,
		logger: logger,
	}
}

// Load читает список событий учителя. Best-effort: нет записи или запись
// не парсится — возвращаем пустой список без ошибки, порчу логируем
// только здесь, на границе хранилища.
func (r *EventRepository) Load(ctx context.Context, teacherID int64) ([]*model.PersonalEvent, error) {
	query := `SELECT payload FROM personal_events WHERE teacher_id = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, teacherID).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load personal events: %w", err)
	}

	var events []*model.PersonalEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		r.logger.Warn("Corrupt personal events payload, treating as empty",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		return nil, nil
	}

	return events, nil
}

// Save перезаписывает список событий учителя целиком
func (r *EventRepository) Save(ctx context.Context, teacherID int64, events []*model.PersonalEvent) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal personal events: %w", err)
	}

	query := `
		INSERT INTO personal_events (teacher_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (teacher_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`

	_, err = r.pool.Exec(ctx, query, teacherID, payload)
	if err != nil {
		return fmt.Errorf("save personal events: %w", err)
	}

	return nil
}
