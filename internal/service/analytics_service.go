package service

import (
	"context"
	"fmt"
	"time"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
)

// TaskSource returns the tasks assigned to a user. Only tasks created at or
// after since are required when since is non-nil.
type TaskSource interface {
	ListAssignedTo(ctx context.Context, userID uint, since *time.Time) ([]model.Task, error)
}

// RangeRequest selects the reporting window: a preset ("7", "30", "90") or
// "custom" with optional Start/End.
type RangeRequest struct {
	Selector string
	Start    *time.Time
	End      *time.Time
}

// AnalyticsService builds per-user analytics reports.
type AnalyticsService struct {
	tasks        TaskSource
	months       analytics.MonthNames
	defaultRange string
	now          func() time.Time
}

func NewAnalyticsService(tasks TaskSource, monthLocale, defaultRange string) *AnalyticsService {
	return &AnalyticsService{
		tasks:        tasks,
		months:       analytics.MonthNamesFor(monthLocale),
		defaultRange: defaultRange,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Report fetches the user's tasks and aggregates them over the requested
// window. A failed or cancelled fetch returns the error and no report.
func (s *AnalyticsService) Report(ctx context.Context, userID uint, req RangeRequest) (analytics.Report, error) {
	selector := req.Selector
	if selector == "" {
		selector = s.defaultRange
	}
	rng := analytics.Resolve(selector, req.Start, req.End, s.now())

	tasks, err := s.tasks.ListAssignedTo(ctx, userID, &rng.From)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("list tasks: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return analytics.Report{}, err
	}

	return analytics.Build(toAnalyticsTasks(tasks), rng, s.months), nil
}

func toAnalyticsTasks(tasks []model.Task) []analytics.Task {
	out := make([]analytics.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, analytics.Task{
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
			DueDate:   t.DueDate,
		})
	}
	return out
}
