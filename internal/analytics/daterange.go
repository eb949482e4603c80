package analytics

import "time"

// Range selectors accepted by Resolve.
const (
	RangeWeek    = "7"
	RangeMonth   = "30"
	RangeQuarter = "90"
	RangeCustom  = "custom"
)

// Range is the reporting window. Both ends are inclusive.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the window.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Resolve turns a range selector into a concrete window ending at now.
// Unrecognized selectors silently resolve to the 30-day window; a custom
// range falls back per side when start or end is missing.
func Resolve(selector string, start, end *time.Time, now time.Time) Range {
	switch selector {
	case RangeWeek:
		return Range{From: now.AddDate(0, 0, -7), To: now}
	case RangeQuarter:
		return Range{From: now.AddDate(0, 0, -90), To: now}
	case RangeCustom:
		r := Range{From: now.AddDate(0, 0, -30), To: now}
		if start != nil {
			r.From = *start
		}
		if end != nil {
			r.To = *end
		}
		return r
	default:
		return Range{From: now.AddDate(0, 0, -30), To: now}
	}
}
