package callbacktypes

import (
	"github.com/soundcheckk/studio_bot/internal/controller/state"
	"github.com/soundcheckk/studio_bot/internal/service"
	"github.com/soundcheckk/studio_bot/internal/viewstate"
	"go.uber.org/zap"
)

// Handler общие зависимости всех callback handlers
type Handler struct {
	RosterService   *service.RosterService
	EventService    *service.EventService
	LedgerService   *service.LedgerService
	CalendarService *service.CalendarService
	Views           *viewstate.Manager
	StateManager    *state.Manager
	Logger          *zap.Logger
}
