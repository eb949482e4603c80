package analytics

import "time"

// Task is the read-only view of a task the engine works on.
type Task struct {
	Status    string
	CreatedAt time.Time
	DueDate   *time.Time
}

// CompletedAt is the effective completion time: the due date when set,
// otherwise the creation time.
func (t Task) CompletedAt() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}

// Report is the chart-ready analytics for one user and range.
type Report struct {
	From                time.Time                 `json:"from"`
	To                  time.Time                 `json:"to"`
	TotalTasks          int                       `json:"totalTasks"`
	CompletedTasks      int                       `json:"completedTasks"`
	CompletedRatePct    float64                   `json:"completedRatePct"`
	AvgCompletedPerWeek float64                   `json:"avgCompletedPerWeek"`
	OpenCount           int                       `json:"openCount"`
	InProgressCount     int                       `json:"inProgressCount"`
	BlockedCount        int                       `json:"blockedCount"`
	DoneCount           int                       `json:"doneCount"`
	OtherCount          int                       `json:"otherCount"`
	DonutSlices         []DonutSlice              `json:"donutSlices"`
	WeeklyProductivity  []WeeklyProductivityPoint `json:"weeklyProductivity"`
	ProductivitySvgPath string                    `json:"productivitySvgPath"`
	ProductivityMax     int                       `json:"productivityMax"`
	Monthly             []MonthlyBars             `json:"monthly"`
}

// Build runs the aggregation pipeline over tasks for the window r. Tasks
// created outside r are ignored.
func Build(tasks []Task, r Range, names MonthNames) Report {
	inRange := FilterRange(tasks, r)
	counts := Tally(inRange)

	weekly := BuildWeekly(CompletionDates(inRange, r.From.Location()), r.From)
	values := make([]float64, len(weekly))
	for i, p := range weekly {
		values[i] = float64(p.Completed)
	}

	return Report{
		From:                r.From,
		To:                  r.To,
		TotalTasks:          counts.Total,
		CompletedTasks:      counts.Done,
		CompletedRatePct:    counts.CompletedRatePct(),
		AvgCompletedPerWeek: AverageCompleted(weekly),
		OpenCount:           counts.Open,
		InProgressCount:     counts.InProgress,
		BlockedCount:        counts.Blocked,
		DoneCount:           counts.Done,
		OtherCount:          counts.Other,
		DonutSlices:         BuildDonut(counts.DonutEntries(), counts.Total),
		WeeklyProductivity:  weekly,
		ProductivitySvgPath: BuildLinePath(values),
		ProductivityMax:     ProductivityMax(weekly),
		Monthly:             BuildMonthly(inRange, r.To, names),
	}
}

// FilterRange keeps the tasks created inside r, preserving order.
func FilterRange(tasks []Task, r Range) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if r.Contains(t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out
}

// CompletionDates returns the date part, taken in loc, of the effective
// completion time of every Done task.
func CompletionDates(tasks []Task, loc *time.Location) []time.Time {
	var dates []time.Time
	for _, t := range tasks {
		if Normalize(t.Status) == StatusDone {
			dates = append(dates, midnight(t.CompletedAt().In(loc)))
		}
	}
	return dates
}
