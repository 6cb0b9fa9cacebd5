package handler

import (
	"cuadrante-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message, user *models.User) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message, user)

	// Worked time (all users)
	case "entry":
		h.addTimeEntry(message, user, args)
	case "entries":
		h.listTimeEntries(message, user, args)
	case "delentry":
		h.deleteTimeEntry(message, user, args)

	// Balances and alerts (all users)
	case "balance":
		h.showBalance(message, user)
	case "alerts":
		h.showAlerts(message, user)
	case "recalc":
		h.recalculate(message, user, args)

	// Official schedule (admins)
	case "plan":
		h.addScheduleEntry(message, user, args)
	case "plans":
		h.listScheduleEntries(message, user, args)
	case "delplan":
		h.deleteScheduleEntry(message, user, args)

	// Administration
	case "fallback":
		h.configureFallback(message, user, args)
	case "overview":
		h.showOverview(message, user, args)
	case "users":
		h.showAllUsers(message, user)
	case "promote":
		h.promoteToAdmin(message, user, args)
	case "demote":
		h.demoteToClient(message, user, args)
	case "admins":
		h.showAdmins(message, user)

	default:
		h.reply(message.Chat.ID, "❓ Unknown command. Send /help for the list.")
	}
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	text := `👋 Hello! I track your worked time against the official schedule.

📝 Log a day with /entry, check where you stand with /balance.
Send /help for the full command list.`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📖 Available commands:

🕐 Worked time
/entry <date> <hours> [shift] [options] - log a worked day, e.g. /entry 2026-03-02 8:00 M
  options: holiday|oncall|sick, vacation, personal, extra:H:MM, free-text notes
/entries [YYYY-MM] - list your entries for a month
/delentry <id> - delete one of your entries

📊 Balances
/balance - your current week and month balance
/alerts - your open deviation alerts
/recalc [date] - recompute your balances

Admins get more with /helpadmin.`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message, user *models.User) {
	if !h.requireAdmin(message, user) {
		return
	}

	text := `🔧 Admin commands:

📅 Official schedule
/plan <user_id> <date> <hours> [shift] - set the planned time for a day
/plans <user_id> [YYYY-MM] - list a user's planned days
/delplan <id> - delete a schedule entry

⚙️ Engine
/fallback [zero|contract <hours>] - show or set the planned-time fallback
/recalc all - recompute every user
/overview [YYYY-MM] - balances of all users for a month

👥 Users
/users - list registered users
/promote <chat_id> - grant admin rights
/demote <chat_id> - revoke admin rights
/admins - list administrators`

	h.reply(message.Chat.ID, text)
}
