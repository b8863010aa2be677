package app

import (
	"context"
	"time"

	"github.com/soundcheckk/studio_bot/internal/service"
	"go.uber.org/zap"
)

// RosterRefresher периодически обновляет снимки реестра учеников.
// Обновление развязано с правками журнала: гонка между ними безобидна,
// агрегация всегда считается от текущего снимка.
type RosterRefresher struct {
	roster   *service.RosterService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewRosterRefresher создаёт новый фоновый обновлятор реестра
func NewRosterRefresher(roster *service.RosterService, interval time.Duration, logger *zap.Logger) *RosterRefresher {
	return &RosterRefresher{
		roster:   roster,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновое обновление
func (r *RosterRefresher) Start(ctx context.Context) {
	r.logger.Info("Starting roster refresher", zap.Duration("interval", r.interval))
	go r.run(ctx)
}

// Stop останавливает фоновое обновление
func (r *RosterRefresher) Stop() {
	r.logger.Info("Stopping roster refresher")
	close(r.stopChan)
}

func (r *RosterRefresher) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refreshAll(ctx)
		case <-r.stopChan:
			r.logger.Info("Roster refresher stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Roster refresher cancelled")
			return
		}
	}
}

func (r *RosterRefresher) refreshAll(ctx context.Context) {
	for _, teacherID := range r.roster.KnownTeachers() {
		r.roster.Refresh(ctx, teacherID)
	}
}
