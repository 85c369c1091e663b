package services

import (
	"testing"
	"time"

	"pomofocus/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_Now(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("X", 3600))
	clock := Clock(func() time.Time { return fixed })

	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.True(t, fixed.Equal(clock.Now()))

	var zero Clock
	assert.WithinDuration(t, time.Now(), zero.Now(), time.Second)
}

func TestGetDateRange(t *testing.T) {
	r := GetDateRange(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), r.End)
	assert.True(t, r.Contains(r.Start))
	assert.False(t, r.Contains(r.End))
}

func TestGetWeekRange(t *testing.T) {
	r := GetWeekRange(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), r.End)
}

func TestGetMonthBounds(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		first string
		last  string
	}{
		{"should handle a leap february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"should handle december", time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), "2023-12-01", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := GetMonthBounds(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestParseDateParam(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)

	date, day, err := ParseDateParam("date", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", date)
	assert.Equal(t, 0, day.Hour())

	date, _, err = ParseDateParam("date", "2024-02-29", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", date)

	_, _, err = ParseDateParam("date", "15/01/2024", now)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
