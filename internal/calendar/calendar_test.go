package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-petcare/internal/appointment"
	"github.com/tartampluch/go-petcare/internal/calendar"
)

func days(w calendar.Week) []int {
	out := make([]int, 0, len(w))
	for _, c := range w {
		out = append(out, c.Day)
	}
	return out
}

func TestMonthGrid(t *testing.T) {
	t.Run("March2025StartsSaturday", func(t *testing.T) {
		grid := calendar.MonthGrid(2025, time.March)
		require.Len(t, grid, 6)
		assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, days(grid[0]))
		assert.Equal(t, []int{30, 31, 0, 0, 0, 0, 0}, days(grid[5]))
	})

	t.Run("February2026FitsFourWeeks", func(t *testing.T) {
		grid := calendar.MonthGrid(2026, time.February)
		require.Len(t, grid, 4)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, days(grid[0]))
		assert.Equal(t, []int{22, 23, 24, 25, 26, 27, 28}, days(grid[3]))
	})

	t.Run("LeapFebruary", func(t *testing.T) {
		grid := calendar.MonthGrid(2024, time.February)
		last := grid[len(grid)-1]
		assert.Contains(t, days(last), 29)
		assert.True(t, last[6].Blank() || last[6].Day == 29)
	})

	t.Run("EveryDayOnce", func(t *testing.T) {
		seen := 0
		for _, w := range calendar.MonthGrid(2025, time.August) {
			for _, c := range w {
				if !c.Blank() {
					seen++
					assert.Equal(t, seen, c.Day)
				}
			}
		}
		assert.Equal(t, 31, seen)
	})
}

func TestShift(t *testing.T) {
	y, m := calendar.Shift(2025, time.January, -1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = calendar.Shift(2025, time.December, 1)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestInViewedMonth(t *testing.T) {
	appts := []appointment.Appointment{
		{ID: "1", Date: "2025-02-28"},
		{ID: "2", Date: "2025-03-01"},
		{ID: "3", Date: "not-a-date"},
		{ID: "4", Date: "2025-03-31"},
		{ID: "5", Date: "2024-03-15"},
	}

	got := calendar.InViewedMonth(appts, 2025, time.March)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[1].ID)

	marked := calendar.DaysWithAppointments(appts, 2025, time.March)
	assert.Equal(t, map[int]bool{1: true, 31: true}, marked)
}

func TestInitialViewMonth(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.Local)

	t.Run("NextUpcomingWins", func(t *testing.T) {
		appts := []appointment.Appointment{
			{Date: "2025-01-05", Time: "9:00 AM"},
			{Date: "2025-06-01", Time: "9:00 AM"},
			{Date: "2025-05-20", Time: "9:00 AM"},
		}
		y, m := calendar.InitialViewMonth(appts, now)
		assert.Equal(t, 2025, y)
		assert.Equal(t, time.May, m)
	})

	t.Run("FallsBackToEarliest", func(t *testing.T) {
		appts := []appointment.Appointment{
			{Date: "2025-02-05", Time: "9:00 AM"},
			{Date: "2024-11-01", Time: "9:00 AM"},
		}
		y, m := calendar.InitialViewMonth(appts, now)
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.November, m)
	})

	t.Run("EmptyUsesNow", func(t *testing.T) {
		y, m := calendar.InitialViewMonth(nil, now)
		assert.Equal(t, 2025, y)
		assert.Equal(t, time.March, m)
	})

	t.Run("SameDayLaterCounts", func(t *testing.T) {
		a, ok := calendar.NextUpcoming([]appointment.Appointment{
			{ID: "past", Date: "2025-03-15", Time: "9:00 AM"},
			{ID: "later", Date: "2025-03-15", Time: "10:00 AM"},
		}, now)
		require.True(t, ok)
		assert.Equal(t, "later", a.ID)
	})
}
