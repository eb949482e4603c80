package analytics

// Counts is the per-status tally of the tasks inside a range.
type Counts struct {
	Total      int
	Done       int
	InProgress int
	Open       int
	Blocked    int
	Other      int
}

// Tally folds tasks into a Counts record using Normalize.
func Tally(tasks []Task) Counts {
	var c Counts
	for _, t := range tasks {
		c = c.add(Normalize(t.Status))
	}
	return c
}

func (c Counts) add(s Status) Counts {
	c.Total++
	switch s {
	case StatusDone:
		c.Done++
	case StatusInProgress:
		c.InProgress++
	case StatusOpen:
		c.Open++
	case StatusBlocked:
		c.Blocked++
	default:
		c.Other++
	}
	return c
}

// CompletedRatePct is the share of done tasks in percent, 0 for an empty tally.
func (c Counts) CompletedRatePct() float64 {
	return Percent(c.Done, c.Total)
}

// Percent returns part/whole as a percentage rounded to one decimal, or 0
// when whole is not positive.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(float64(part) * 100 / float64(whole))
}

// DonutEntries returns the donut categories in their fixed order.
func (c Counts) DonutEntries() []DonutEntry {
	return []DonutEntry{
		{Key: StatusInProgress, Count: c.InProgress, Color: ColorInProgress},
		{Key: StatusDone, Count: c.Done, Color: ColorDone},
		{Key: StatusOpen, Count: c.Open, Color: ColorOpen},
		{Key: StatusBlocked, Count: c.Blocked, Color: ColorBlocked},
	}
}
