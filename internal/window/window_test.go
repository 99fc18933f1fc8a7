package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPreviousCoversYesterday(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	w := Previous(now)

	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), w.End)
	require.Equal(t, "2024-03-09", w.Date())
}

func TestPreviousProperties(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		time.Date(2023, 12, 31, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 3, 4, 5, 0, time.FixedZone("JST", 9*3600)),
	}

	for _, now := range instants {
		w := Previous(now)

		require.True(t, w.Start.Before(w.End), "start must precede end for %v", now)
		require.False(t, w.End.After(now.UTC()), "end must not pass the invocation instant %v", now)
		require.Equal(t, 24*time.Hour, w.End.Sub(w.Start), "window must span one day for %v", now)
		require.Zero(t, w.End.Hour(), "end must be midnight aligned for %v", now)
		require.Zero(t, w.End.Minute())
		require.Zero(t, w.End.Second())
	}
}

func TestPreviousNormalizesZone(t *testing.T) {
	// 2024-06-15 03:00 JST is 2024-06-14 18:00 UTC, so the exported
	// day must be the 13th, not the 14th.
	now := time.Date(2024, 6, 15, 3, 0, 0, 0, time.FixedZone("JST", 9*3600))

	w := Previous(now)

	require.Equal(t, "2024-06-13", w.Date())
}

func TestForDate(t *testing.T) {
	w, err := ForDate("2024-03-09")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), w.End)

	_, err = ForDate("09/03/2024")
	require.Error(t, err)
}
