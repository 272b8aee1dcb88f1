package journal

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func entryAt(mood string, at time.Time) LogEntry {
	return LogEntry{Mood: mood, CreatedAt: at}
}

func TestBuildInsightsEmpty(t *testing.T) {
	got := BuildInsights(nil, time.Now())
	want := Insights{Moods: []MoodShare{}, Weekly: []DayActivity{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("insights mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInsights(t *testing.T) {
	// Thursday.
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset) }
	entries := []LogEntry{
		entryAt("Bored", day(0)),
		entryAt("Anxious", day(0)),
		entryAt("", day(1)),
		entryAt("Anxious", day(2)),
		entryAt("Bored", day(6)),
		entryAt("Tired", day(7)),
		entryAt("Lonely", day(10)),
		entryAt("Angry", day(12)),
		entryAt("Craving", day(20)),
	}

	got := BuildInsights(entries, now)
	want := Insights{
		Moods: []MoodShare{
			{Mood: "Bored", Count: 2, Percent: 22},
			{Mood: "Anxious", Count: 2, Percent: 22},
			{Mood: "Unknown", Count: 1, Percent: 11},
			{Mood: "Tired", Count: 1, Percent: 11},
			{Mood: "Lonely", Count: 1, Percent: 11},
		},
		Weekly: []DayActivity{
			{Date: "2026-03-06", Label: "F", Count: 1},
			{Date: "2026-03-07", Label: "S", Count: 0},
			{Date: "2026-03-08", Label: "S", Count: 0},
			{Date: "2026-03-09", Label: "M", Count: 0},
			{Date: "2026-03-10", Label: "T", Count: 1},
			{Date: "2026-03-11", Label: "W", Count: 1},
			{Date: "2026-03-12", Label: "T", Count: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("insights mismatch (-want +got):\n%s", diff)
	}
}
