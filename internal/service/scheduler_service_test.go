package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClockSpec(t *testing.T) {
	spec, err := buildClockSpec("09:30", "*")
	require.NoError(t, err)
	assert.Equal(t, "0 30 9 * * *", spec)

	spec, err = buildClockSpec(" 18:05 ", "1")
	require.NoError(t, err)
	assert.Equal(t, "0 5 18 * * 1", spec)

	for _, bad := range []string{"", "9", "24:00", "12:60", "aa:10", "10:bb", "1:2:3"} {
		_, err := buildClockSpec(bad, "*")
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSchedulerService_Register(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	_, err := s.ScheduleDaily("08:00", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleWeekly(time.Monday, "09:00", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(168*time.Hour, func() {})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Entries())

	_, err = s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleWeekly(time.Friday, "25:00", func() {})
	assert.Error(t, err)
	assert.Equal(t, 3, s.Entries())

	s.Start()
	s.Stop()
}

func TestSchedulerService_ScheduleReport(t *testing.T) {
	s := NewSchedulerService(time.UTC)
	from := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC) // Wednesday

	weekly, err := s.ScheduleReport("Monday", "09:00", time.Hour, func() {})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 23, 9, 0, 0, 0, time.UTC), s.cron.Entry(weekly).Schedule.Next(from))

	daily, err := s.ScheduleReport(" daily ", "07:30", time.Hour, func() {})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 19, 7, 30, 0, 0, time.UTC), s.cron.Entry(daily).Schedule.Next(from))

	every, err := s.ScheduleReport("", "07:30", 2*time.Hour, func() {})
	require.NoError(t, err)
	assert.Equal(t, from.Add(2*time.Hour), s.cron.Entry(every).Schedule.Next(from))

	_, err = s.ScheduleReport("someday", "07:30", time.Hour, func() {})
	assert.Error(t, err)
	_, err = s.ScheduleReport("friday", "7", time.Hour, func() {})
	assert.Error(t, err)
	assert.Equal(t, 3, s.Entries())
}

func TestParseWeekday(t *testing.T) {
	d, ok := parseWeekday("sunday")
	require.True(t, ok)
	assert.Equal(t, time.Sunday, d)
	d, ok = parseWeekday("SATURDAY")
	require.True(t, ok)
	assert.Equal(t, time.Saturday, d)
	_, ok = parseWeekday("mon")
	assert.False(t, ok)
}
