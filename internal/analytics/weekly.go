package analytics

import (
	"fmt"
	"time"
)

const (
	productivityWeeks = 7
	// The series starts six weeks before the range start.
	productivityLeadDays = 42
)

// WeeklyProductivityPoint counts completions in one Monday-start week.
type WeeklyProductivityPoint struct {
	Label     string `json:"label"`
	Completed int    `json:"completed"`
}

// StartOfWeek returns midnight of the Monday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (7 + int(t.Weekday()-time.Monday)) % 7
	return midnight(t.AddDate(0, 0, -offset))
}

// BuildWeekly counts completion dates per week for the seven weeks starting
// at the Monday on or before from-42d. Weeks without completions are
// zero-filled, so the result always has seven points.
func BuildWeekly(completions []time.Time, from time.Time) []WeeklyProductivityPoint {
	anchor := from.AddDate(0, 0, -productivityLeadDays)
	points := make([]WeeklyProductivityPoint, 0, productivityWeeks)
	for i := 0; i < productivityWeeks; i++ {
		start := StartOfWeek(anchor.AddDate(0, 0, i*7))
		end := start.AddDate(0, 0, 7)
		count := 0
		for _, d := range completions {
			if !d.Before(start) && d.Before(end) {
				count++
			}
		}
		_, week := start.ISOWeek()
		points = append(points, WeeklyProductivityPoint{
			Label:     fmt.Sprintf("W%d", week),
			Completed: count,
		})
	}
	return points
}

// ProductivityMax is the largest weekly count, floored at 1 for chart scaling.
func ProductivityMax(points []WeeklyProductivityPoint) int {
	peak := 1
	for _, p := range points {
		if p.Completed > peak {
			peak = p.Completed
		}
	}
	return peak
}

// AverageCompleted is the mean weekly count rounded to one decimal.
func AverageCompleted(points []WeeklyProductivityPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range points {
		sum += p.Completed
	}
	return round1(float64(sum) / float64(len(points)))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
