package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
)

func sampleReport() analytics.Report {
	d0 := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	tasks := []analytics.Task{
		{Status: "done", CreatedAt: d0, DueDate: timePtr(d0.AddDate(0, 0, 2))},
		{Status: "Open", CreatedAt: d0},
		{Status: "later", CreatedAt: d0},
	}
	return analytics.Build(tasks, analytics.Resolve("", nil, nil, fixedNow), analytics.MonthNamesFor("en"))
}

func TestRender_Text(t *testing.T) {
	out := Render(sampleReport(), "Ana", FormatText, fixedNow)

	assert.Contains(t, out, "Analytics report · Ana")
	assert.Contains(t, out, "2026-02-18 – 2026-03-20")
	assert.Contains(t, out, "• Total: 3")
	assert.Contains(t, out, "• Completed: 1 (33.3%)")
	assert.Contains(t, out, "Other 1")
	assert.Contains(t, out, "W2")
	assert.Contains(t, out, "March: 3 / 1")
	assert.NotContains(t, out, "<b>")
}

func TestRender_HTMLEscapesName(t *testing.T) {
	out := Render(sampleReport(), "<Ana & Bo>", FormatHTML, fixedNow)

	assert.Contains(t, out, "<b>Analytics report</b>")
	assert.Contains(t, out, "&lt;Ana &amp; Bo&gt;")
	assert.NotContains(t, out, "<Ana")
}

func TestRender_EmptyReport(t *testing.T) {
	r := analytics.Build(nil, analytics.Resolve("", nil, nil, fixedNow), analytics.MonthNamesFor("en"))
	out := Render(r, "", FormatText, fixedNow)

	assert.Contains(t, out, "no tasks in this period")
	assert.Contains(t, out, "avg 0.0/week")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "·", bar(0, 1))
	assert.Equal(t, "·", bar(3, 0))
	assert.Equal(t, "██████████", bar(4, 4))
	assert.Equal(t, "█████", bar(2, 4))
	assert.Equal(t, "█", bar(1, 40))
}

func TestSummaryService_DigestUsesWeekRange(t *testing.T) {
	src := &fakeTaskSource{}
	reports := NewAnalyticsService(src, "en", analytics.RangeQuarter).WithClock(func() time.Time { return fixedNow })

	out, err := NewSummaryService(reports).Digest(context.Background(), model.User{ID: 4, Name: "Bo"}, fixedNow)
	require.NoError(t, err)

	require.NotNil(t, src.lastSince)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), *src.lastSince)
	assert.Equal(t, uint(4), src.lastUser)
	assert.Contains(t, out, "<b>Analytics report</b> · Bo")
}
