package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadenceByNameUnknown(t *testing.T) {
	_, err := CadenceByName("hourly", 0)
	assert.Error(t, err)

	_, err = CadenceByName("every_n_days", 0)
	assert.Error(t, err)
}

func TestCadenceDaily(t *testing.T) {
	c, err := CadenceByName("daily", 0)
	require.NoError(t, err)

	assert.True(t, c.ShouldRun(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ShouldRun(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestCadenceWeekly(t *testing.T) {
	c, err := CadenceByName("weekly", 0)
	require.NoError(t, err)

	// 2023-01-02 is a Monday.
	assert.True(t, c.ShouldRun(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.ShouldRun(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.ShouldRun(time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)))

	// Crossing into the next ISO week fires even mid-week, e.g. when
	// Monday was a holiday.
	assert.True(t, c.ShouldRun(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func TestCadenceWeeklyYearBoundary(t *testing.T) {
	c, _ := CadenceByName("weekly", 0)

	// 2024-12-30 and 2025-01-02 share ISO week 1 of 2025.
	assert.True(t, c.ShouldRun(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.ShouldRun(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ShouldRun(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
}

func TestCadenceMonthly(t *testing.T) {
	c, err := CadenceByName("monthly", 0)
	require.NoError(t, err)

	assert.True(t, c.ShouldRun(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.ShouldRun(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ShouldRun(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.ShouldRun(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCadenceEveryN(t *testing.T) {
	c, err := CadenceByName("every_n_days", 3)
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, c.ShouldRun(day(1)), "first date always fires")
	assert.False(t, c.ShouldRun(day(2)))
	assert.False(t, c.ShouldRun(day(3)))
	assert.True(t, c.ShouldRun(day(4)))
	assert.False(t, c.ShouldRun(day(6)))
	assert.True(t, c.ShouldRun(day(7)))
}
