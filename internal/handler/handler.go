package handler

import (
	"cuadrante-bot/internal/config"
	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/service"
	"cuadrante-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client           *telegram.Client
	userService      *service.UserService
	timeEntryService *service.TimeEntryService
	scheduleService  *service.ScheduleService
	balanceService   *service.BalanceService
	settingsService  *service.SettingsService
	config           *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	timeEntryService *service.TimeEntryService,
	scheduleService *service.ScheduleService,
	balanceService *service.BalanceService,
	settingsService *service.SettingsService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:           client,
		userService:      userService,
		timeEntryService: timeEntryService,
		scheduleService:  scheduleService,
		balanceService:   balanceService,
		settingsService:  settingsService,
		config:           cfg,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logrus.Infof("[%s] %s", message.From.UserName, message.Text)

	user, err := h.userService.RegisterFromChat(
		message.Chat.ID,
		message.From.UserName,
		message.From.FirstName,
		message.From.LastName,
	)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Internal error, please try again later.")
		return
	}

	if message.IsCommand() {
		h.handleCommand(message, user)
		return
	}

	h.reply(message.Chat.ID, "🤖 I only understand commands. Send /help for the list.")
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	h.client.Bot.Send(msg)
}

// requireAdmin replies with a refusal and returns false for non-admins.
func (h *Handler) requireAdmin(message *tgbotapi.Message, user *models.User) bool {
	if user.IsAdmin() {
		return true
	}

	h.reply(message.Chat.ID, "🚫 This command is only available to administrators.")
	return false
}
