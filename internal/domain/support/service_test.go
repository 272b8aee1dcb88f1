package support

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDailyQuoteComesFromPool(t *testing.T) {
	svc := &service{pick: func(n int) int { return n - 1 }}
	require.Equal(t, dailyQuotes[len(dailyQuotes)-1], svc.DailyQuote())

	random := NewService()
	for i := 0; i < 20; i++ {
		require.Contains(t, dailyQuotes, random.DailyQuote())
	}
}

func TestCrisisToolkit(t *testing.T) {
	kit := NewService().Crisis()
	require.Len(t, kit.Motivation, 6)
	require.Len(t, kit.Reasons, 4)
	require.Equal(t, int64(8000), kit.RotateIntervalMs)
	require.Equal(t, 10*time.Second, kit.Breathing.CycleLength())

	kit.Motivation[0] = "changed"
	require.NotEqual(t, "changed", NewService().Crisis().Motivation[0])
}
