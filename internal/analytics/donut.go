package analytics

import "sort"

// Donut palette.
const (
	ColorInProgress = "#135bec"
	ColorDone       = "#22c55e"
	ColorOpen       = "#f59e0b"
	ColorBlocked    = "#ef4444"
)

// DonutEntry is one category fed into BuildDonut.
type DonutEntry struct {
	Key   Status
	Count int
	Color string
}

// DonutSlice is one arc of the status donut, ready for stroke-dasharray rendering.
type DonutSlice struct {
	Key        Status  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
	DashArray  string  `json:"dashArray"`
	DashOffset string  `json:"dashOffset"`
}

// BuildDonut converts category counts into slices ordered by count, largest
// first. Equal counts keep their input order. Offsets accumulate the
// unrounded percentages so consecutive arcs meet exactly.
func BuildDonut(entries []DonutEntry, total int) []DonutSlice {
	slices := []DonutSlice{}
	if total <= 0 {
		return slices
	}

	ordered := make([]DonutEntry, 0, len(entries))
	for _, e := range entries {
		if e.Count > 0 {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	var acc float64
	for _, e := range ordered {
		pct := float64(e.Count) / float64(total) * 100
		slices = append(slices, DonutSlice{
			Key:        e.Key,
			Count:      e.Count,
			Percentage: round1(pct),
			Color:      e.Color,
			DashArray:  formatDecimal(pct) + " " + formatDecimal(100-pct),
			DashOffset: "-" + formatDecimal(acc),
		})
		acc += pct
	}
	return slices
}
