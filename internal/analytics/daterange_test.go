package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	r := Resolve(RangeWeek, nil, nil, now)
	assert.Equal(t, now.AddDate(0, 0, -7), r.From)
	assert.Equal(t, now, r.To)

	r = Resolve(RangeQuarter, nil, nil, now)
	assert.Equal(t, now.AddDate(0, 0, -90), r.From)
	assert.Equal(t, now, r.To)

	r = Resolve(RangeMonth, nil, nil, now)
	assert.Equal(t, now.AddDate(0, 0, -30), r.From)
	assert.Equal(t, now, r.To)
}

func TestResolve_UnknownFallsBackToThirtyDays(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	want := Resolve(RangeMonth, nil, nil, now)

	for _, sel := range []string{"unknown", "", "365", "CUSTOM", "7d"} {
		got := Resolve(sel, nil, nil, now)
		assert.Equal(t, want, got, "selector %q", sel)
		assert.Equal(t, now.AddDate(0, 0, -30), got.From)
	}
}

func TestResolve_Custom(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	r := Resolve(RangeCustom, &start, &end, now)
	assert.Equal(t, start, r.From)
	assert.Equal(t, end, r.To)

	r = Resolve(RangeCustom, nil, &end, now)
	assert.Equal(t, now.AddDate(0, 0, -30), r.From)
	assert.Equal(t, end, r.To)

	r = Resolve(RangeCustom, &start, nil, now)
	assert.Equal(t, start, r.From)
	assert.Equal(t, now, r.To)
}

func TestRangeContains_BothEndsInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	r := Range{From: from, To: to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.True(t, r.Contains(from.AddDate(0, 0, 10)))
	assert.False(t, r.Contains(from.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(to.Add(time.Nanosecond)))
}
