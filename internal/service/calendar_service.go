package service

import (
	"context"
	"time"

	"github.com/soundcheckk/studio_bot/internal/attendance"
	"github.com/soundcheckk/studio_bot/internal/calendar"
	"go.uber.org/zap"
)

// MonthView полный пересчёт месяца: сетка, помесячная посещаемость по
// ученикам и сводка студии. Пересчитывается целиком после каждой правки
// журнала — при размерах одной студии это дешевле, чем точечные патчи,
// и исключает рассинхронизацию.
type MonthView struct {
	Grid        *calendar.MonthGrid
	PerStudent  []attendance.StudentMonth
	Summary     attendance.StudioSummary
	RosterStale bool
}

// CalendarService собирает месяц из реестра, событий и журнала
type CalendarService struct {
	roster *RosterService
	events *EventService
	ledger *LedgerService
	logger *zap.Logger
}

// NewCalendarService создаёт новый сервис календаря
func NewCalendarService(roster *RosterService, events *EventService, ledgerSvc *LedgerService, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		roster: roster,
		events: events,
		ledger: ledgerSvc,
		logger: logger,
	}
}

// BuildMonth материализует и агрегирует активный месяц учителя.
// Вычисление синхронное и чистое: к моменту возврата всё посчитано.
func (s *CalendarService) BuildMonth(ctx context.Context, teacherID int64, year int, month time.Month) *MonthView {
	students, stale := s.roster.Roster(ctx, teacherID)
	events := s.events.List(ctx, teacherID)
	store := s.ledger.Store(ctx, teacherID)

	grid := calendar.MaterializeMonth(year, month, students, events)
	today := time.Now().UTC()
	perStudent := attendance.AggregateMonth(grid, store, students, today)
	summary := attendance.Summarize(perStudent, year, month, today)

	return &MonthView{
		Grid:        grid,
		PerStudent:  perStudent,
		Summary:     summary,
		RosterStale: stale,
	}
}
