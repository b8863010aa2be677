package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks"
	"github.com/soundcheckk/studio_bot/internal/controller/callbacks/callbacktypes"
	"github.com/soundcheckk/studio_bot/internal/controller/handlers"
	"github.com/soundcheckk/studio_bot/internal/controller/state"
	"github.com/soundcheckk/studio_bot/internal/metrics"
	"github.com/soundcheckk/studio_bot/internal/service"
	"github.com/soundcheckk/studio_bot/internal/viewstate"
	"go.uber.org/zap"
)

type BotController struct {
	bot    *bot.Bot
	deps   *callbacktypes.Handler
	logger *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	rosterService *service.RosterService,
	eventService *service.EventService,
	ledgerService *service.LedgerService,
	calendarService *service.CalendarService,
	logger *zap.Logger,
) *BotController {
	deps := &callbacktypes.Handler{
		RosterService:   rosterService,
		EventService:    eventService,
		LedgerService:   ledgerService,
		CalendarService: calendarService,
		Views:           viewstate.NewManager(),
		StateManager:    state.NewManager(),
		Logger:          logger,
	}

	return &BotController{
		bot:    botInstance,
		deps:   deps,
		logger: logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.command(handlers.HandleStart))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.command(handlers.HandleHelp))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.command(handlers.HandleCalendar))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/summary", bot.MatchTypeExact, c.command(handlers.HandleSummary))
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/events", bot.MatchTypeExact, c.command(handlers.HandleEvents))

	// Текстовые сообщения диалогов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.command(handlers.HandleTextMessage))

	// Нажатия на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handleCallback)

	return c.setCommands(ctx)
}

func (c *BotController) command(
	fn func(ctx context.Context, b *bot.Bot, update *models.Update, h *callbacktypes.Handler),
) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}
		metrics.BotUpdates.Inc()
		fn(ctx, b, update, c.deps)
	}
}

func (c *BotController) handleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	metrics.BotUpdates.Inc()
	callbacks.Route(ctx, b, update.CallbackQuery, c.deps)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "calendar", Description: "🗓 Календарь занятий"},
		{Command: "summary", Description: "📊 Сводка посещаемости"},
		{Command: "events", Description: "🗒 Личные события"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
