package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soundcheckk/studio_bot/internal/model"
	"github.com/soundcheckk/studio_bot/internal/repository"
	"go.uber.org/zap"
)

// EventService управляет личными событиями учителя
type EventService struct {
	eventRepo *repository.EventRepository
	logger    *zap.Logger
}

// NewEventService создаёт новый сервис событий
func NewEventService(eventRepo *repository.EventRepository, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// List возвращает события учителя. Отсутствие или порча записи — пустой
// список, календарь строится без событий.
func (s *EventService) List(ctx context.Context, teacherID int64) []*model.PersonalEvent {
	events, err := s.eventRepo.Load(ctx, teacherID)
	if err != nil {
		s.logger.Warn("Personal events load failed, treating as empty",
			zap.Int64("teacher_id", teacherID),
			zap.Error(err))
		return nil
	}
	return events
}

// Create добавляет событие. Для одноразовых событий без явной даты опорной
// неделей становится текущая.
func (s *EventService) Create(ctx context.Context, teacherID int64, ev *model.PersonalEvent) (*model.PersonalEvent, error) {
	ev.ID = uuid.NewString()
	ev.CreatedAt = time.Now().UTC()
	if !ev.Recurring && ev.DateKey == "" && ev.StartWeek.IsZero() {
		ev.StartWeek = time.Now().UTC()
	}

	events := s.List(ctx, teacherID)
	events = append(events, ev)

	if err := s.eventRepo.Save(ctx, teacherID, events); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	s.logger.Info("Personal event created",
		zap.Int64("teacher_id", teacherID),
		zap.String("event_id", ev.ID),
		zap.Bool("recurring", ev.Recurring))

	return ev, nil
}

// Delete удаляет событие по ID
func (s *EventService) Delete(ctx context.Context, teacherID int64, eventID string) error {
	events := s.List(ctx, teacherID)

	kept := events[:0]
	for _, ev := range events {
		if ev.ID != eventID {
			kept = append(kept, ev)
		}
	}
	if len(kept) == len(events) {
		return fmt.Errorf("event not found: %s", eventID)
	}

	if err := s.eventRepo.Save(ctx, teacherID, kept); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	s.logger.Info("Personal event deleted",
		zap.Int64("teacher_id", teacherID),
		zap.String("event_id", eventID))

	return nil
}
