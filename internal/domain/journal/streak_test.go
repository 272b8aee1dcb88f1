package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeStreak(t *testing.T) {
	since := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := since.Add(7*24*time.Hour + 3*time.Hour + 25*time.Minute + 9*time.Second)

	streak := ComputeStreak(since, now)
	require.Equal(t, 7, streak.Days)
	require.Equal(t, 3, streak.Hours)
	require.Equal(t, 25, streak.Minutes)
	require.Equal(t, 9, streak.Seconds)
	require.Equal(t, "One Week Champion!", streak.Milestone)

	future := ComputeStreak(now, since)
	require.Zero(t, future.Days)
	require.Zero(t, future.Seconds)
	require.Empty(t, future.Milestone)
}

func TestMilestone(t *testing.T) {
	cases := map[int]string{
		0:   "",
		1:   "1 Day Strong!",
		2:   "2 Days Strong!",
		7:   "One Week Champion!",
		30:  "One Month Victory!",
		99:  "99 Days Strong!",
		100: "100+ Days Legend!",
		365: "100+ Days Legend!",
	}
	for days, want := range cases {
		require.Equal(t, want, Milestone(days), "days=%d", days)
	}
}
