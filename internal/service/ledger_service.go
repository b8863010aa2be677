package service

import (
	"context"
	"sync"
	"time"

	"github.com/soundcheckk/studio_bot/internal/ledger"
	"github.com/soundcheckk/studio_bot/internal/metrics"
	"github.com/soundcheckk/studio_bot/internal/model"
	"github.com/soundcheckk/studio_bot/internal/observability"
	"github.com/soundcheckk/studio_bot/internal/repository"
	"go.uber.org/zap"
)

// LedgerService владеет журналами посещаемости учителей. Журнал загружается
// при первом обращении и дальше живёт в памяти; каждая мутация сохраняется
// best-effort: неудачная запись логируется, но состояние в памяти не
// откатывается — отзывчивость интерфейса важнее строгой согласованности,
// это осознанный компромисс.
type LedgerService struct {
	ledgerRepo *repository.LedgerRepository
	logger     *zap.Logger

	mu     sync.Mutex
	stores map[int64]*ledger.Store
	status map[int64]model.LoadStatus
	warned map[int64]bool
}

// NewLedgerService создаёт новый сервис журнала
func NewLedgerService(ledgerRepo *repository.LedgerRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
		stores:     make(map[int64]*ledger.Store),
		status:     make(map[int64]model.LoadStatus),
		warned:     make(map[int64]bool),
	}
}

// Store возвращает журнал учителя, при первом обращении загружая его
func (s *LedgerService) Store(ctx context.Context, teacherID int64) *ledger.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeLocked(ctx, teacherID)
}

// SetMark ставит отметку и сохраняет журнал, если состояние изменилось
func (s *LedgerService) SetMark(ctx context.Context, teacherID, studentID int64, dateKey string, mark model.Mark) {
	s.mu.Lock()
	store := s.storeLocked(ctx, teacherID)
	changed := store.SetMark(studentID, dateKey, mark)
	snap := store.Snapshot()
	s.mu.Unlock()

	if changed {
		s.persist(ctx, teacherID, snap)
	}
}

// ClearMark снимает отметку и сохраняет журнал, если состояние изменилось
func (s *LedgerService) ClearMark(ctx context.Context, teacherID, studentID int64, dateKey string) {
	s.mu.Lock()
	store := s.storeLocked(ctx, teacherID)
	changed := store.ClearMark(studentID, dateKey)
	snap := store.Snapshot()
	s.mu.Unlock()

	if changed {
		s.persist(ctx, teacherID, snap)
	}
}

// ConsumeLoadWarning возвращает true один раз, если журнал учителя при
// загрузке оказался повреждён. Даёт контроллеру показать разовое
// предупреждение, не меняя поведение по умолчанию.
func (s *LedgerService) ConsumeLoadWarning(teacherID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status[teacherID] == model.LoadCorrupt && !s.warned[teacherID] {
		s.warned[teacherID] = true
		return true
	}
	return false
}

func (s *LedgerService) storeLocked(ctx context.Context, teacherID int64) *ledger.Store {
	if store, exists := s.stores[teacherID]; exists {
		return store
	}

	snap, status, err := s.ledgerRepo.Load(ctx, teacherID)
	if err != nil {
		// недоступность БД тоже не фатальна: начинаем с пустого журнала
		s.logger.Warn("Ledger load failed, starting empty",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		status = model.LoadEmpty
	}

	store := ledger.Restore(snap)
	s.stores[teacherID] = store
	s.status[teacherID] = status
	return store
}

// persist сохраняет снимок журнала. Ошибка проглатывается намеренно:
// состояние в памяти уже изменилось и не откатывается.
func (s *LedgerService) persist(ctx context.Context, teacherID int64, snap model.LedgerSnapshot) {
	start := time.Now()
	err := s.ledgerRepo.Save(ctx, teacherID, snap)
	metrics.ObserveLedgerSave(time.Since(start), err)
	if err != nil {
		s.logger.Error("Ledger save failed, in-memory state kept",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		observability.CaptureErr(err)
	}
}
