package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodBounds(t *testing.T) {
	accra, err := time.LoadLocation("Africa/Accra")
	require.NoError(t, err)
	// Wednesday
	now := time.Date(2026, time.March, 11, 15, 4, 5, 0, accra)

	cases := []struct {
		period string
		from   time.Time
		to     time.Time
	}{
		{"today", time.Date(2026, 3, 11, 0, 0, 0, 0, accra), time.Date(2026, 3, 12, 0, 0, 0, 0, accra)},
		{"thisweek", time.Date(2026, 3, 9, 0, 0, 0, 0, accra), time.Date(2026, 3, 16, 0, 0, 0, 0, accra)},
		{"thismonth", time.Date(2026, 3, 1, 0, 0, 0, 0, accra), time.Date(2026, 4, 1, 0, 0, 0, 0, accra)},
		{"thisyear", time.Date(2026, 1, 1, 0, 0, 0, 0, accra), time.Date(2027, 1, 1, 0, 0, 0, 0, accra)},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			from, to, err := PeriodBounds(tc.period, now)
			require.NoError(t, err)
			assert.True(t, from.Equal(tc.from), "from %s", from)
			assert.True(t, to.Equal(tc.to.Add(-time.Nanosecond)), "to %s", to)
		})
	}
}

func TestPeriodBoundsWeekStartsMonday(t *testing.T) {
	sunday := time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC)
	from, _, err := PeriodBounds("thisweek", sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, 9, from.Day())
}

func TestPeriodBoundsBlankAndInvalid(t *testing.T) {
	from, to, err := PeriodBounds("  ", time.Now())
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	_, _, err = PeriodBounds("yesterday", time.Now())
	assert.Error(t, err)
}
