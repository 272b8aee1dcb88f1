package journal

import (
	"fmt"
	"time"
)

// ComputeStreak breaks the time between since and now into whole units.
// A since in the future yields a zero streak.
func ComputeStreak(since, now time.Time) Streak {
	elapsed := now.Sub(since)
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(elapsed / time.Second)
	days := int(total / 86400)
	return Streak{
		Since:     since.UTC(),
		Days:      days,
		Hours:     int(total % 86400 / 3600),
		Minutes:   int(total % 3600 / 60),
		Seconds:   int(total % 60),
		Milestone: Milestone(days),
	}
}

// Milestone labels a streak length in days.
func Milestone(days int) string {
	switch {
	case days <= 0:
		return ""
	case days == 1:
		return "1 Day Strong!"
	case days == 7:
		return "One Week Champion!"
	case days == 30:
		return "One Month Victory!"
	case days >= 100:
		return "100+ Days Legend!"
	default:
		return fmt.Sprintf("%d Days Strong!", days)
	}
}
