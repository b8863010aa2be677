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

// LedgerRepository хранит журнал посещаемости одной jsonb-записью на учителя:
// {owedByStudent, noShowByStudent, marksByLesson}
type LedgerRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewLedgerRepository создаёт новый репозиторий
func NewLedgerRepository(pool *pgxpool.Pool, logger *zap.Logger) *LedgerRepository {
	return &LedgerRepository{
		pool:   pool,
		logger: logger,
	}
}

// Load читает снимок журнала учителя. Типизированный результат загрузки:
// нет записи — LoadEmpty, запись не парсится — LoadCorrupt; в обоих случаях
// журнал пуст и это не ошибка. Порча логируется только здесь.
func (r *LedgerRepository) Load(ctx context.Context, teacherID int64) (model.LedgerSnapshot, model.LoadStatus, error) {
	query := `SELECT payload FROM attendance_ledgers WHERE teacher_id = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, teacherID).Scan(&payload)
	if err == pgx.ErrNoRows {
		return model.LedgerSnapshot{}, model.LoadEmpty, nil
	}
	if err != nil {
		return model.LedgerSnapshot{}, model.LoadEmpty, fmt.Errorf("load attendance ledger: %w", err)
	}

	var snap model.LedgerSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		r.logger.Warn("Corrupt attendance ledger payload, starting empty",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		return model.LedgerSnapshot{}, model.LoadCorrupt, nil
	}

	return snap, model.LoadLoaded, nil
}

// Save перезаписывает снимок журнала учителя
func (r *LedgerRepository) Save(ctx context.Context, teacherID int64, snap model.LedgerSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal attendance ledger: %w", err)
	}

	query := `
		INSERT INTO attendance_ledgers (teacher_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (teacher_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`

	_, err = r.pool.Exec(ctx, query, teacherID, payload)
	if err != nil {
		return fmt.Errorf("save attendance ledger: %w", err)
	}

	return nil
}
