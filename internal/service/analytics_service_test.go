package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
)

var fixedNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func TestAnalyticsService_Report(t *testing.T) {
	d0 := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	src := &fakeTaskSource{tasks: []model.Task{
		{ID: 1, Status: "done", CreatedAt: d0, DueDate: timePtr(d0.AddDate(0, 0, 2))},
		{ID: 2, Status: "Open", CreatedAt: d0},
		{ID: 3, Status: "Open", CreatedAt: fixedNow.AddDate(0, 0, 1)},
	}}
	svc := NewAnalyticsService(src, "en", analytics.RangeMonth).WithClock(func() time.Time { return fixedNow })

	report, err := svc.Report(context.Background(), 7, RangeRequest{Selector: analytics.RangeMonth})
	require.NoError(t, err)

	assert.Equal(t, uint(7), src.lastUser)
	require.NotNil(t, src.lastSince)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), *src.lastSince)

	assert.Equal(t, 2, report.TotalTasks)
	assert.Equal(t, 1, report.DoneCount)
	assert.Equal(t, 1, report.OpenCount)
	assert.Equal(t, 50.0, report.CompletedRatePct)
	assert.Len(t, report.DonutSlices, 2)
	assert.Len(t, report.WeeklyProductivity, 7)
	assert.Len(t, report.Monthly, 5)
	assert.Equal(t, "March", report.Monthly[4].Label)
}

func TestAnalyticsService_DefaultRange(t *testing.T) {
	src := &fakeTaskSource{}
	svc := NewAnalyticsService(src, "en", analytics.RangeQuarter).WithClock(func() time.Time { return fixedNow })

	report, err := svc.Report(context.Background(), 1, RangeRequest{})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -90), report.From)

	report, err = svc.Report(context.Background(), 1, RangeRequest{Selector: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), report.From)
	assert.Equal(t, fixedNow, report.To)
}

func TestAnalyticsService_CustomRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	src := &fakeTaskSource{tasks: []model.Task{
		{Status: "Done", CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Status: "Done", CreatedAt: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewAnalyticsService(src, "es", analytics.RangeMonth).WithClock(func() time.Time { return fixedNow })

	report, err := svc.Report(context.Background(), 1, RangeRequest{Selector: analytics.RangeCustom, Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalTasks)
	assert.Equal(t, "enero", report.Monthly[4].Label)
}

func TestAnalyticsService_FetchErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := NewAnalyticsService(&fakeTaskSource{err: boom}, "en", "")

	report, err := svc.Report(context.Background(), 1, RangeRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, report.TotalTasks)
	assert.Nil(t, report.WeeklyProductivity)
}

func TestAnalyticsService_CancellationIsAllOrNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeTaskSource{
		tasks:  []model.Task{{Status: "Done", CreatedAt: fixedNow}},
		onList: func(context.Context) { cancel() },
	}
	svc := NewAnalyticsService(src, "en", "").WithClock(func() time.Time { return fixedNow })

	report, err := svc.Report(ctx, 1, RangeRequest{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, src.calls)
	assert.Zero(t, report.TotalTasks)
	assert.Nil(t, report.DonutSlices)
	assert.Nil(t, report.Monthly)
}
