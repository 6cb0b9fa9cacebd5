package handler

import (
	"fmt"
	"strconv"
	"strings"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/pkg/period"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// addScheduleEntry handles /plan <user_id> <date> <hours> [shift]
func (h *Handler) addScheduleEntry(message *tgbotapi.Message, user *models.User, args string) {
	if !h.requireAdmin(message, user) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) < 3 {
		h.reply(message.Chat.ID, "❌ Usage: /plan <user_id> <YYYY-MM-DD> <H:MM> [shift]")
		return
	}

	targetID, err := strconv.Atoi(parts[0])
	if err != nil || targetID <= 0 {
		h.reply(message.Chat.ID, "❌ Invalid user id.")
		return
	}

	target, err := h.userService.GetByID(uint(targetID))
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the user: "+err.Error())
		return
	}
	if target == nil {
		h.reply(message.Chat.ID, "❌ User not found. Use /users to see registered users.")
		return
	}

	if _, err := period.ParseDate(parts[1]); err != nil {
		h.reply(message.Chat.ID, "❌ Invalid date, expected YYYY-MM-DD.")
		return
	}

	minutes, err := models.ParseClock(parts[2])
	if err != nil {
		h.reply(message.Chat.ID, "❌ Invalid duration, expected H:MM (e.g. 8:00).")
		return
	}

	shift := ""
	if len(parts) > 3 {
		shift = parts[3]
	}

	entry := &models.ScheduleEntry{
		UserID:         uint(targetID),
		WorkDate:       parts[1],
		ShiftName:      shift,
		PlannedMinutes: minutes,
		DayType:        models.DayTypeNormal,
	}

	if err := h.scheduleService.Upsert(entry); err != nil {
		h.reply(message.Chat.ID, "❌ Could not save the schedule entry: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Planned %s for %s on %s.",
		models.FormatMinutes(minutes), target.DisplayName(), entry.WorkDate))
}

// listScheduleEntries handles /plans <user_id> [YYYY-MM]
func (h *Handler) listScheduleEntries(message *tgbotapi.Message, user *models.User, args string) {
	if !h.requireAdmin(message, user) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) < 1 {
		h.reply(message.Chat.ID, "❌ Usage: /plans <user_id> [YYYY-MM]")
		return
	}

	targetID, err := strconv.Atoi(parts[0])
	if err != nil || targetID <= 0 {
		h.reply(message.Chat.ID, "❌ Invalid user id.")
		return
	}

	monthArg := ""
	if len(parts) > 1 {
		monthArg = parts[1]
	}
	year, month, ok := parseYearMonth(monthArg)
	if !ok {
		h.reply(message.Chat.ID, "❌ Invalid month, expected YYYY-MM.")
		return
	}

	entries, err := h.scheduleService.GetByUserAndMonth(uint(targetID), year, month)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the schedule: "+err.Error())
		return
	}

	if len(entries) == 0 {
		h.reply(message.Chat.ID, fmt.Sprintf("📭 No planned days for user #%d in %04d-%02d.", targetID, year, month))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 Planned days of user #%d for %04d-%02d:\n\n", targetID, year, month))
	total := 0
	for _, e := range entries {
		line := fmt.Sprintf("#%d  %s  %s", e.ID, e.WorkDate, models.FormatMinutes(e.PlannedMinutes))
		if e.ShiftName != "" {
			line += "  (" + e.ShiftName + ")"
		}
		sb.WriteString(line + "\n")
		total += e.PlannedMinutes
	}
	sb.WriteString(fmt.Sprintf("\n⏱ Total planned: %s", models.FormatMinutes(total)))

	h.reply(message.Chat.ID, sb.String())
}

// deleteScheduleEntry handles /delplan <id>
func (h *Handler) deleteScheduleEntry(message *tgbotapi.Message, user *models.User, args string) {
	if !h.requireAdmin(message, user) {
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		h.reply(message.Chat.ID, "❌ Usage: /delplan <id>")
		return
	}

	if err := h.scheduleService.Delete(uint(id)); err != nil {
		h.reply(message.Chat.ID, "❌ Could not delete the schedule entry: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("🗑 Schedule entry #%d deleted.", id))
}
