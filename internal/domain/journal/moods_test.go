package journal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddMood(t *testing.T) {
	defaults := DefaultMoods()

	same, changed := AddMood(defaults, "  anxious ")
	require.False(t, changed)
	require.Equal(t, defaults, same)

	updated, changed := AddMood(defaults, " Restless ")
	require.True(t, changed)
	require.Len(t, updated, MaxMoods)
	require.Equal(t, "Restless", updated[0])
	require.Equal(t, "Lonely", updated[MaxMoods-1])
	require.NotContains(t, updated, "Angry")
	require.Equal(t, "Angry", defaults[MaxMoods-1], "input list must not be modified")

	short, changed := AddMood([]string{"Calm"}, "Proud")
	require.True(t, changed)
	require.Equal(t, []string{"Proud", "Calm"}, short)

	_, changed = AddMood(defaults, "   ")
	require.False(t, changed)
}
