package journal

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yanqian/mindmend/pkg/util"
)

const (
	topMoods     = 5
	weeklyWindow = 7
	unknownMood  = "Unknown"
)

// BuildInsights summarises entries relative to now.
func BuildInsights(entries []LogEntry, now time.Time) Insights {
	if len(entries) == 0 {
		return Insights{Moods: []MoodShare{}, Weekly: []DayActivity{}}
	}
	return Insights{
		Moods:  moodBreakdown(entries),
		Weekly: weeklyActivity(entries, now),
	}
}

func moodBreakdown(entries []LogEntry) []MoodShare {
	counts := make(map[string]int)
	var order []string
	for _, entry := range entries {
		mood := strings.TrimSpace(entry.Mood)
		if mood == "" {
			mood = unknownMood
		}
		if _, seen := counts[mood]; !seen {
			order = append(order, mood)
		}
		counts[mood]++
	}
	shares := make([]MoodShare, 0, len(order))
	for _, mood := range order {
		count := counts[mood]
		shares = append(shares, MoodShare{
			Mood:    mood,
			Count:   count,
			Percent: int(math.Round(float64(count) / float64(len(entries)) * 100)),
		})
	}
	// Stable keeps first-seen order among equal counts.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	if len(shares) > topMoods {
		shares = shares[:topMoods]
	}
	return shares
}

func weeklyActivity(entries []LogEntry, now time.Time) []DayActivity {
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[util.DayKey(entry.CreatedAt)]++
	}
	today := now.UTC()
	days := make([]DayActivity, 0, weeklyWindow)
	for i := weeklyWindow - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := util.DayKey(day)
		days = append(days, DayActivity{
			Date:  key,
			Label: day.Weekday().String()[:1],
			Count: counts[key],
		})
	}
	return days
}
