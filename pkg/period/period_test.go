package period_test

import (
	"testing"
	"time"

	"cuadrante-bot/pkg/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeek_KeyFollowsISOYear(t *testing.T) {
	// Jan 1 2026 is a Thursday, it belongs to 2026-W01
	w := period.Week(date(2026, time.January, 1))

	assert.Equal(t, "2026-W01", w.Key)
	assert.Equal(t, period.TypeWeek, w.Type)
}

func TestWeek_MondayToSundayBounds(t *testing.T) {
	w := period.Week(date(2026, time.January, 1))

	assert.Equal(t, "2025-12-29", period.DateKey(w.Start))
	assert.Equal(t, "2026-01-04", period.DateKey(w.End))
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, time.Sunday, w.End.Weekday())
}

func TestWeek_SameWindowAcrossYearBoundary(t *testing.T) {
	fromDecember := period.Week(date(2025, time.December, 29))
	fromJanuary := period.Week(date(2026, time.January, 1))

	assert.Equal(t, fromJanuary.Key, fromDecember.Key)
	assert.True(t, fromDecember.Start.Equal(fromJanuary.Start))
	assert.True(t, fromDecember.End.Equal(fromJanuary.End))
}

func TestWeek_SundayStaysInItsWeek(t *testing.T) {
	w := period.Week(date(2026, time.January, 4))

	assert.Equal(t, "2026-W01", w.Key)
	assert.Equal(t, "2025-12-29", period.DateKey(w.Start))
}

func TestWeek_SevenDays(t *testing.T) {
	days := period.Week(date(2026, time.March, 11)).Days()

	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[6].Weekday())
}

func TestMonth_Key(t *testing.T) {
	w := period.Month(date(2026, time.March, 15))

	assert.Equal(t, "2026-03", w.Key)
	assert.Equal(t, period.TypeMonth, w.Type)
	assert.Equal(t, "2026-03-01", period.DateKey(w.Start))
	assert.Equal(t, "2026-03-31", period.DateKey(w.End))
}

func TestMonth_LeapFebruary(t *testing.T) {
	w := period.Month(date(2028, time.February, 10))

	assert.Equal(t, "2028-02", w.Key)
	assert.Equal(t, "2028-02-29", period.DateKey(w.End))
	assert.Len(t, w.Days(), 29)
}

func TestWindow_Contains(t *testing.T) {
	w := period.Month(date(2026, time.March, 15))

	assert.True(t, w.Contains(date(2026, time.March, 1)))
	assert.True(t, w.Contains(date(2026, time.March, 31)))
	assert.False(t, w.Contains(date(2026, time.April, 1)))
	assert.False(t, w.Contains(date(2026, time.February, 28)))
}

func TestParseDate(t *testing.T) {
	parsed, err := period.ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", period.DateKey(parsed))

	_, err = period.ParseDate("02/03/2026")
	assert.Error(t, err)

	_, err = period.ParseDate("")
	assert.Error(t, err)
}
