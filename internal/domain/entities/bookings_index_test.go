package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadeyina/stayhaven/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveIndex(t *testing.T) {
	t.Run("marks every day of the range on an empty index", func(t *testing.T) {
		idx, err := ResolveIndex(BookingsIndex{}, date(2024, time.March, 1), date(2024, time.March, 3))
		require.NoError(t, err)

		// March is month "2" zero based.
		assert.True(t, idx["2024"]["2"]["1"])
		assert.True(t, idx["2024"]["2"]["2"])
		assert.True(t, idx["2024"]["2"]["3"])
		assert.Len(t, idx["2024"]["2"], 3)
		assert.Len(t, idx, 1)
	})

	t.Run("single-day range marks exactly one day", func(t *testing.T) {
		day := date(2025, time.July, 14)
		idx, err := ResolveIndex(BookingsIndex{}, day, day)
		require.NoError(t, err)

		assert.True(t, idx.Booked(day))
		assert.Len(t, idx["2025"]["6"], 1)
	})

	t.Run("sequential non-overlapping ranges accumulate the union", func(t *testing.T) {
		ranges := [][2]time.Time{
			{date(2024, time.March, 1), date(2024, time.March, 3)},
			{date(2024, time.March, 10), date(2024, time.March, 12)},
			{date(2024, time.April, 1), date(2024, time.April, 1)},
		}

		idx := BookingsIndex{}
		for _, r := range ranges {
			next, err := ResolveIndex(idx, r[0], r[1])
			require.NoError(t, err)
			idx = next
		}

		want := []time.Time{
			date(2024, time.March, 1), date(2024, time.March, 2), date(2024, time.March, 3),
			date(2024, time.March, 10), date(2024, time.March, 11), date(2024, time.March, 12),
			date(2024, time.April, 1),
		}
		total := 0
		for _, months := range idx {
			for _, days := range months {
				total += len(days)
			}
		}
		assert.Equal(t, len(want), total)
		for _, day := range want {
			assert.True(t, idx.Booked(day), "expected %s to be booked", day.Format(DateLayout))
		}
	})

	t.Run("overlap fails with a date conflict and leaves the input untouched", func(t *testing.T) {
		idx, err := ResolveIndex(BookingsIndex{}, date(2024, time.March, 1), date(2024, time.March, 3))
		require.NoError(t, err)

		_, err = ResolveIndex(idx, date(2024, time.March, 3), date(2024, time.March, 5))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDateConflict))

		// The caller's index must not have been partially updated.
		assert.True(t, idx.Booked(date(2024, time.March, 3)))
		assert.False(t, idx.Booked(date(2024, time.March, 4)))
		assert.False(t, idx.Booked(date(2024, time.March, 5)))
		assert.Len(t, idx["2024"]["2"], 3)
	})

	t.Run("range crossing a year boundary creates new nesting", func(t *testing.T) {
		idx, err := ResolveIndex(BookingsIndex{}, date(2024, time.December, 30), date(2025, time.January, 2))
		require.NoError(t, err)

		assert.True(t, idx["2024"]["11"]["30"])
		assert.True(t, idx["2024"]["11"]["31"])
		assert.True(t, idx["2025"]["0"]["1"])
		assert.True(t, idx["2025"]["0"]["2"])

		total := 0
		for _, months := range idx {
			for _, days := range months {
				total += len(days)
			}
		}
		assert.Equal(t, 4, total)
	})

	t.Run("walks calendar days even when inputs carry clock time", func(t *testing.T) {
		checkIn := time.Date(2024, time.October, 26, 23, 30, 0, 0, time.UTC)
		checkOut := time.Date(2024, time.October, 28, 1, 0, 0, 0, time.UTC)

		idx, err := ResolveIndex(BookingsIndex{}, checkIn, checkOut)
		require.NoError(t, err)

		// Oct 26-28 spans the European DST fallback; UTC day stepping must
		// still produce exactly three days.
		assert.True(t, idx["2024"]["9"]["26"])
		assert.True(t, idx["2024"]["9"]["27"])
		assert.True(t, idx["2024"]["9"]["28"])
		assert.Len(t, idx["2024"]["9"], 3)
	})
}

func TestBookingsIndex_Copy(t *testing.T) {
	idx := BookingsIndex{"2024": {"2": {"1": true}}}
	cp := idx.Copy()

	cp["2024"]["2"]["15"] = true
	cp["2025"] = map[string]map[string]bool{"0": {"1": true}}

	assert.False(t, idx.Booked(date(2024, time.March, 15)))
	assert.False(t, idx.Booked(date(2025, time.January, 1)))
	assert.True(t, idx.Booked(date(2024, time.March, 1)))
}

func TestInclusiveNights(t *testing.T) {
	assert.Equal(t, int64(1), InclusiveNights(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, int64(3), InclusiveNights(date(2024, time.March, 1), date(2024, time.March, 3)))
	assert.Equal(t, int64(4), InclusiveNights(date(2024, time.December, 30), date(2025, time.January, 2)))
}

func TestParseDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := ParseDate("2024-03-01")
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 1), d)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDate("03/01/2024")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
