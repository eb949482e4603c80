package analytics

import "time"

const monthlyBars = 5

// MonthlyBars holds created and completed counts for one calendar month.
type MonthlyBars struct {
	Label   string `json:"label"`
	Created int    `json:"created"`
	Done    int    `json:"done"`
}

// BuildMonthly produces five consecutive months ending with to's month.
// Created counts use createdAt; done counts use the effective completion
// time of Done tasks.
func BuildMonthly(tasks []Task, to time.Time, names MonthNames) []MonthlyBars {
	first := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location()).AddDate(0, -(monthlyBars - 1), 0)

	bars := make([]MonthlyBars, 0, monthlyBars)
	for i := 0; i < monthlyBars; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, 0)
		bar := MonthlyBars{Label: names.Name(start.Month())}
		for _, t := range tasks {
			if within(t.CreatedAt, start, end) {
				bar.Created++
			}
			if Normalize(t.Status) == StatusDone && within(t.CompletedAt(), start, end) {
				bar.Done++
			}
		}
		bars = append(bars, bar)
	}
	return bars
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
