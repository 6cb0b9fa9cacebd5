package handler

import (
	"fmt"
	"strconv"
	"strings"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/service"
	"cuadrante-bot/pkg/period"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func statusEmoji(status string) string {
	switch status {
	case models.StatusExceeded:
		return "🔴"
	case models.StatusWarning:
		return "🟡"
	default:
		return "🟢"
	}
}

// showBalance handles /balance: the user's open week and month.
func (h *Handler) showBalance(message *tgbotapi.Message, user *models.User) {
	if err := h.balanceService.RecalculateOpenPeriods(user.ID, service.TriggerManual); err != nil {
		h.reply(message.Chat.ID, "❌ Could not recalculate your balance: "+err.Error())
		return
	}

	today := period.Today()
	week := period.Week(today)
	month := period.Month(today)

	var sb strings.Builder
	sb.WriteString("📊 Your current balance:\n")

	for _, w := range []period.Window{week, month} {
		balance, err := h.balanceService.GetBalance(user.ID, w.Type, w.Key)
		if err != nil {
			h.reply(message.Chat.ID, "❌ Could not load your balance: "+err.Error())
			return
		}
		if balance == nil {
			continue
		}

		sb.WriteString(fmt.Sprintf("\n%s %s\n", statusEmoji(balance.Status), w.Key))
		sb.WriteString(fmt.Sprintf("   worked %s / planned %s\n",
			models.FormatMinutes(balance.WorkedMinutes), models.FormatMinutes(balance.PlannedMinutes)))
		sb.WriteString(fmt.Sprintf("   difference %s\n", models.FormatSignedMinutes(balance.DifferenceMinutes)))
	}

	alerts, err := h.balanceService.GetAlerts(user.ID)
	if err == nil && len(alerts) > 0 {
		sb.WriteString("\n⚠️ Active alerts:\n")
		for _, a := range alerts {
			sb.WriteString(fmt.Sprintf("   %s %s\n", a.PeriodKey, a.Message))
		}
	}

	h.reply(message.Chat.ID, sb.String())
}

// showAlerts handles /alerts.
func (h *Handler) showAlerts(message *tgbotapi.Message, user *models.User) {
	alerts, err := h.balanceService.GetAlerts(user.ID)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load your alerts: "+err.Error())
		return
	}

	if len(alerts) == 0 {
		h.reply(message.Chat.ID, "✅ No open alerts, everything is within limits.")
		return
	}

	var sb strings.Builder
	sb.WriteString("⚠️ Your open alerts:\n\n")
	for _, a := range alerts {
		emoji := "🟡"
		if a.Severity == models.SeverityCritical {
			emoji = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s %s - %s\n", emoji, a.PeriodKey, a.Message))
	}

	h.reply(message.Chat.ID, sb.String())
}

// recalculate handles /recalc [date|all].
func (h *Handler) recalculate(message *tgbotapi.Message, user *models.User, args string) {
	arg := strings.TrimSpace(args)

	if arg == "all" {
		if !h.requireAdmin(message, user) {
			return
		}

		processed, failures := h.balanceService.RecalculateAllUsers(service.TriggerManual)
		text := fmt.Sprintf("✅ Recalculated balances for %d users.", processed)
		if len(failures) > 0 {
			text += fmt.Sprintf("\n⚠️ %d users failed, see the logs.", len(failures))
		}
		h.reply(message.Chat.ID, text)
		return
	}

	if arg == "" {
		if err := h.balanceService.RecalculateOpenPeriods(user.ID, service.TriggerManual); err != nil {
			h.reply(message.Chat.ID, "❌ Recalculation failed: "+err.Error())
			return
		}
		h.reply(message.Chat.ID, "✅ Your current week and month were recalculated.")
		return
	}

	if _, err := period.ParseDate(arg); err != nil {
		h.reply(message.Chat.ID, "❌ Usage: /recalc [YYYY-MM-DD|all]")
		return
	}

	if err := h.balanceService.RecalculateForUserAndDate(user.ID, arg, service.TriggerManual); err != nil {
		h.reply(message.Chat.ID, "❌ Recalculation failed: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Periods containing %s were recalculated.", arg))
}

// configureFallback handles /fallback [zero|contract <hours>].
func (h *Handler) configureFallback(message *tgbotapi.Message, user *models.User, args string) {
	if !h.requireAdmin(message, user) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) == 0 {
		mode, minutes, err := h.settingsService.FallbackConfig()
		if err != nil {
			h.reply(message.Chat.ID, "❌ Could not load the fallback configuration: "+err.Error())
			return
		}

		text := fmt.Sprintf("⚙️ Fallback mode: %s", mode)
		if mode == models.FallbackModeContract {
			text += fmt.Sprintf(" (%s per unscheduled day)", models.FormatMinutes(minutes))
		}
		h.reply(message.Chat.ID, text)
		return
	}

	mode := parts[0]
	minutes := models.DefaultFallbackMinutes
	if len(parts) > 1 {
		parsed, err := models.ParseClock(parts[1])
		if err != nil {
			h.reply(message.Chat.ID, "❌ Invalid duration, expected H:MM (e.g. 8:00).")
			return
		}
		minutes = parsed
	}

	if err := h.settingsService.SetFallbackConfig(mode, minutes); err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, "✅ Fallback configuration updated. Balances refresh on the next recalculation.")
}

// showOverview handles /overview [YYYY-MM]: month balances of all users.
func (h *Handler) showOverview(message *tgbotapi.Message, user *models.User, args string) {
	if !h.requireAdmin(message, user) {
		return
	}

	year, month, ok := parseYearMonth(strings.TrimSpace(args))
	if !ok {
		h.reply(message.Chat.ID, "❌ Invalid month, expected YYYY-MM.")
		return
	}
	periodKey := fmt.Sprintf("%04d-%02d", year, month)

	balances, err := h.balanceService.GetBalancesForPeriod(period.TypeMonth, periodKey)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the overview: "+err.Error())
		return
	}

	if len(balances) == 0 {
		h.reply(message.Chat.ID, fmt.Sprintf("📭 No balances computed for %s yet.", periodKey))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Balances for %s:\n\n", periodKey))
	for _, b := range balances {
		name := "user #" + strconv.Itoa(int(b.UserID))
		if u, err := h.userService.GetByID(b.UserID); err == nil && u != nil {
			name = u.DisplayName()
		}
		sb.WriteString(fmt.Sprintf("%s %s: worked %s / planned %s (%s)\n",
			statusEmoji(b.Status), name,
			models.FormatMinutes(b.WorkedMinutes), models.FormatMinutes(b.PlannedMinutes),
			models.FormatSignedMinutes(b.DifferenceMinutes)))
	}

	h.reply(message.Chat.ID, sb.String())
}
