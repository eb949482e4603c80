package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestBuildMonthly_FiveConsecutiveMonths(t *testing.T) {
	to := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	bars := BuildMonthly(nil, to, MonthNamesFor("en"))

	require.Len(t, bars, 5)
	labels := make([]string, 0, len(bars))
	for _, b := range bars {
		assert.Zero(t, b.Created)
		assert.Zero(t, b.Done)
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"November", "December", "January", "February", "March"}, labels)
}

func TestBuildMonthly_CreatedAndDoneWindows(t *testing.T) {
	to := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{Status: "Open", CreatedAt: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)},
		{Status: "done", CreatedAt: time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), DueDate: ptr(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))},
		{Status: "Done", CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Status: "Blocked", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), DueDate: ptr(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))},
		{Status: "Done", CreatedAt: time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC)},
	}

	bars := BuildMonthly(tasks, to, MonthNamesFor("es"))
	require.Len(t, bars, 5)

	assert.Equal(t, MonthlyBars{Label: "noviembre", Created: 1, Done: 0}, bars[0])
	assert.Equal(t, MonthlyBars{Label: "diciembre", Created: 0, Done: 0}, bars[1])
	assert.Equal(t, MonthlyBars{Label: "enero", Created: 1, Done: 0}, bars[2])
	assert.Equal(t, MonthlyBars{Label: "febrero", Created: 1, Done: 2}, bars[3])
	assert.Equal(t, MonthlyBars{Label: "marzo", Created: 1, Done: 0}, bars[4])
}

func TestBuildMonthly_EndOfMonthAnchor(t *testing.T) {
	to := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	bars := BuildMonthly(nil, to, MonthNamesFor("en"))

	labels := make([]string, 0, len(bars))
	for _, b := range bars {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"January", "February", "March", "April", "May"}, labels)
}
