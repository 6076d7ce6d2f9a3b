package periods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekKeyJanuaryFirst(t *testing.T) {
	// Jan 1 is always week 1 under the heuristic, whatever its weekday.
	for _, year := range []int{2020, 2021, 2022, 2023, 2024, 2025, 2026} {
		assert.Equal(t, "W01", WeekKey(date(year, time.January, 1))[5:], "year %d", year)
	}
	assert.Equal(t, "2022-W01", WeekKey(date(2022, time.January, 1)))
	assert.Equal(t, "2024-W01", WeekKey(date(2024, time.January, 1)))
}

func TestWeekKeyDiffersFromISO(t *testing.T) {
	cases := []struct {
		when time.Time
		want string
	}{
		// ISO puts 2022-01-02 in 2021-W52.
		{date(2022, time.January, 2), "2022-W02"},
		{date(2023, time.January, 7), "2023-W01"},
		{date(2023, time.January, 8), "2023-W02"},
		{date(2024, time.January, 10), "2024-W02"},
		{date(2024, time.July, 4), "2024-W27"},
		// ISO puts 2024-12-31 in 2025-W01.
		{date(2024, time.December, 31), "2024-W53"},
		{date(2022, time.December, 31), "2022-W53"},
		{date(2023, time.December, 31), "2023-W53"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekKey(tc.when), DayKey(tc.when))
	}
}

func TestWeekNumberIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2023, time.January, 7, 0, 0, 0, 0, time.UTC)
	evening := time.Date(2023, time.January, 7, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, WeekNumber(morning), WeekNumber(evening))

	// A Saturday afternoon stays in the week of its Sunday-to-Saturday span.
	saturdayNoon := time.Date(2024, time.January, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-W01", WeekKey(saturdayNoon))
}

func TestDayAndMonthKeys(t *testing.T) {
	when := time.Date(2024, time.March, 5, 18, 4, 0, 0, time.UTC)
	keys := KeysFor(when)

	assert.Equal(t, "2024-03-05", keys.Day)
	assert.Equal(t, "2024-03", keys.Month)
	assert.Equal(t, "2024-W10", keys.Week)
	assert.Equal(t, 10, keys.WeekNumber)
}

func TestParseDayKey(t *testing.T) {
	got, err := ParseDayKey("2024-01-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 10), got)

	for _, bad := range []string{"", "2024-1-10", "10/01/2024", "2024-13-01"} {
		_, err := ParseDayKey(bad, time.UTC)
		assert.Error(t, err, bad)
	}
}

func TestWeekBoundsMondayToSunday(t *testing.T) {
	start, end := WeekBounds(time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.January, 8), start)
	assert.Equal(t, time.Date(2024, time.January, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)

	start, _ = WeekBounds(date(2024, time.January, 14))
	assert.Equal(t, date(2024, time.January, 8), start, "sunday belongs to the week that started on monday")
}

func TestCalendarWeekBoundsSundayToSaturday(t *testing.T) {
	start, end := CalendarWeekBounds(time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.January, 7), start)
	assert.Equal(t, time.Date(2024, time.January, 13, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(date(2024, time.February, 17))
	assert.Equal(t, date(2024, time.February, 1), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.January, 10), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 10, end.Day())
}
