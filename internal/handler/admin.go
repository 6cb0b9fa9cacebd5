package handler

import (
	"fmt"
	"strconv"
	"strings"

	"cuadrante-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showAllUsers handles /users.
func (h *Handler) showAllUsers(message *tgbotapi.Message, user *models.User) {
	if !h.requireAdmin(message, user) {
		return
	}

	users, err := h.userService.GetAll()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the user list: "+err.Error())
		return
	}

	if len(users) == 0 {
		h.reply(message.Chat.ID, "📭 No registered users yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Registered users (%d):\n\n", len(users)))
	for _, u := range users {
		role := "👤"
		if u.IsAdmin() {
			role = "👑"
		}
		sb.WriteString(fmt.Sprintf("%s #%d %s (chat %d)\n", role, u.ID, u.DisplayName(), u.ChatID))
	}

	h.reply(message.Chat.ID, sb.String())
}

// promoteToAdmin handles /promote <chat_id>.
func (h *Handler) promoteToAdmin(message *tgbotapi.Message, user *models.User, args string) {
	h.changeRole(message, user, args, models.RoleAdmin, "👑 User promoted to administrator.")
}

// demoteToClient handles /demote <chat_id>.
func (h *Handler) demoteToClient(message *tgbotapi.Message, user *models.User, args string) {
	h.changeRole(message, user, args, models.RoleClient, "👤 Administrator demoted to client.")
}

func (h *Handler) changeRole(message *tgbotapi.Message, user *models.User, args string, role models.Role, success string) {
	if !h.requireAdmin(message, user) {
		return
	}

	chatID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil || chatID == 0 {
		h.reply(message.Chat.ID, "❌ Usage: /promote <chat_id> or /demote <chat_id>")
		return
	}

	if chatID == h.config.BaseAdminChatID && role != models.RoleAdmin {
		h.reply(message.Chat.ID, "🚫 The base administrator cannot be demoted.")
		return
	}

	if err := h.userService.SetRole(chatID, role); err != nil {
		h.reply(message.Chat.ID, "❌ Could not change the role: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, success)
}

// showAdmins handles /admins.
func (h *Handler) showAdmins(message *tgbotapi.Message, user *models.User) {
	if !h.requireAdmin(message, user) {
		return
	}

	admins, err := h.userService.GetAdmins()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the admin list: "+err.Error())
		return
	}

	if len(admins) == 0 {
		h.reply(message.Chat.ID, "📭 No administrators configured.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👑 Administrators (%d):\n\n", len(admins)))
	for _, u := range admins {
		sb.WriteString(fmt.Sprintf("#%d %s (chat %d)\n", u.ID, u.DisplayName(), u.ChatID))
	}

	h.reply(message.Chat.ID, sb.String())
}
