package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/pkg/period"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// entryOptions are the optional tokens accepted after the date and duration:
// a shift name, a day type tag, "vacation"/"personal" flags, "extra:H:MM"
// overtime, and any remaining words as notes.
type entryOptions struct {
	shift        string
	dayType      string
	vacation     bool
	personal     bool
	extraMinutes int
	notes        string
}

func parseEntryOptions(tokens []string) (entryOptions, error) {
	opts := entryOptions{dayType: models.DayTypeNormal}
	var notes []string

	for _, token := range tokens {
		switch {
		case token == "vacation":
			opts.vacation = true
		case token == "personal":
			opts.personal = true
		case models.IsKnownDayType(token):
			opts.dayType = token
		case strings.HasPrefix(token, "extra:"):
			minutes, err := models.ParseClock(strings.TrimPrefix(token, "extra:"))
			if err != nil {
				return opts, err
			}
			opts.extraMinutes = minutes
		case opts.shift == "" && len(notes) == 0:
			opts.shift = token
		default:
			notes = append(notes, token)
		}
	}

	opts.notes = strings.Join(notes, " ")
	return opts, nil
}

// addTimeEntry handles /entry <date> <hours> [shift] [options]
func (h *Handler) addTimeEntry(message *tgbotapi.Message, user *models.User, args string) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		h.reply(message.Chat.ID, "❌ Usage: /entry <YYYY-MM-DD> <H:MM> [shift] [holiday|oncall|sick] [vacation] [personal] [extra:H:MM] [notes]\nExample: /entry 2026-03-02 8:00 M extra:1:30")
		return
	}

	if _, err := period.ParseDate(parts[0]); err != nil {
		h.reply(message.Chat.ID, "❌ Invalid date, expected YYYY-MM-DD.")
		return
	}

	minutes, err := models.ParseClock(parts[1])
	if err != nil {
		h.reply(message.Chat.ID, "❌ Invalid duration, expected H:MM (e.g. 8:00).")
		return
	}

	opts, err := parseEntryOptions(parts[2:])
	if err != nil {
		h.reply(message.Chat.ID, "❌ Invalid extra time, expected extra:H:MM (e.g. extra:1:30).")
		return
	}

	entry := &models.TimeEntry{
		UserID:        user.ID,
		WorkDate:      parts[0],
		Shift:         opts.shift,
		WorkedMinutes: minutes,
		ExtraMinutes:  opts.extraMinutes,
		VacationDay:   opts.vacation,
		PersonalDay:   opts.personal,
		Notes:         opts.notes,
		DayType:       opts.dayType,
	}

	if err := h.timeEntryService.Create(entry); err != nil {
		h.reply(message.Chat.ID, "❌ Could not save the entry: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("✅ Logged %s on %s (entry #%d).",
		models.FormatMinutes(entry.WorkedMinutes), entry.WorkDate, entry.ID))
}

// listTimeEntries handles /entries [YYYY-MM]
func (h *Handler) listTimeEntries(message *tgbotapi.Message, user *models.User, args string) {
	year, month, ok := parseYearMonth(strings.TrimSpace(args))
	if !ok {
		h.reply(message.Chat.ID, "❌ Invalid month, expected YYYY-MM.")
		return
	}

	entries, err := h.timeEntryService.GetByUserAndMonth(user.ID, year, month)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load your entries: "+err.Error())
		return
	}

	if len(entries) == 0 {
		h.reply(message.Chat.ID, fmt.Sprintf("📭 No entries for %04d-%02d.", year, month))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 Your entries for %04d-%02d:\n\n", year, month))
	total := 0
	extraTotal := 0
	vacationDays := 0
	personalDays := 0
	for _, e := range entries {
		line := fmt.Sprintf("#%d  %s  %s", e.ID, e.WorkDate, models.FormatMinutes(e.WorkedMinutes))
		if e.Shift != "" {
			line += "  (" + e.Shift + ")"
		}
		if e.DayType != models.DayTypeNormal {
			line += "  " + e.DayType
		}
		if e.ExtraMinutes > 0 {
			line += "  +" + models.FormatMinutes(e.ExtraMinutes)
		}
		if e.VacationDay {
			line += "  🏖"
			vacationDays++
		}
		if e.PersonalDay {
			line += "  🏠"
			personalDays++
		}
		sb.WriteString(line + "\n")
		total += e.WorkedMinutes
		extraTotal += e.ExtraMinutes
	}

	sb.WriteString(fmt.Sprintf("\n⏱ Total: %s", models.FormatMinutes(total)))
	if extraTotal > 0 {
		sb.WriteString(fmt.Sprintf("\n➕ Extra: %s", models.FormatMinutes(extraTotal)))
	}
	if vacationDays > 0 {
		sb.WriteString(fmt.Sprintf("\n🏖 Vacation days: %d", vacationDays))
	}
	if personalDays > 0 {
		sb.WriteString(fmt.Sprintf("\n🏠 Personal days: %d", personalDays))
	}

	h.reply(message.Chat.ID, sb.String())
}

// deleteTimeEntry handles /delentry <id>
func (h *Handler) deleteTimeEntry(message *tgbotapi.Message, user *models.User, args string) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		h.reply(message.Chat.ID, "❌ Usage: /delentry <id>")
		return
	}

	entry, err := h.timeEntryService.GetByID(uint(id))
	if err != nil {
		h.reply(message.Chat.ID, "❌ Could not load the entry: "+err.Error())
		return
	}
	if entry == nil || (entry.UserID != user.ID && !user.IsAdmin()) {
		h.reply(message.Chat.ID, "❌ Entry not found.")
		return
	}

	if err := h.timeEntryService.Delete(uint(id)); err != nil {
		h.reply(message.Chat.ID, "❌ Could not delete the entry: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, fmt.Sprintf("🗑 Entry #%d deleted.", id))
}

// parseYearMonth parses "YYYY-MM", defaulting to the current month when
// the argument is empty.
func parseYearMonth(arg string) (int, int, bool) {
	if arg == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), true
	}

	parts := strings.Split(arg, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}

	return year, month, true
}
