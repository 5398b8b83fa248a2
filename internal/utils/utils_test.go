package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	// Wednesday 2026-01-07
	got := WeekStart(time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)

	// Monday maps to itself
	got = WeekStart(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)

	// Sunday belongs to the week started the previous Monday
	got = WeekStart(time.Date(2026, 1, 11, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, "2026-Q1", QuarterOf(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-Q2", QuarterOf(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-Q4", QuarterOf(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
}

func TestQuarterBounds(t *testing.T) {
	start, end := QuarterBounds(time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMaskUsername(t *testing.T) {
	assert.Equal(t, "d***e", MaskUsername("diamondqueen"))
	assert.Equal(t, "***", MaskUsername("ab"))
	assert.Equal(t, "***", MaskUsername(""))
}
