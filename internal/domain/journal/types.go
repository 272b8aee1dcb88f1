package journal

import "time"

// EntryType distinguishes a resisted urge from a relapse.
type EntryType string

const (
	EntryUrge    EntryType = "urge"
	EntryRelapse EntryType = "relapse"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == EntryUrge || t == EntryRelapse
}

// LogEntry is one journal record.
type LogEntry struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	Type       EntryType `json:"type"`
	Mood       string    `json:"mood"`
	Notes      string    `json:"notes"`
	AIResponse *string   `json:"aiResponse"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateRequest is the payload for a new entry.
type CreateRequest struct {
	Type  EntryType `json:"type"`
	Mood  string    `json:"mood"`
	Notes string    `json:"notes"`
}

// Streak is the time since the last relapse.
type Streak struct {
	Since     time.Time `json:"since"`
	Days      int       `json:"days"`
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Seconds   int       `json:"seconds"`
	Milestone string    `json:"milestone"`
}

// MoodShare is one slice of the mood breakdown.
type MoodShare struct {
	Mood    string `json:"mood"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// DayActivity counts entries on one UTC calendar day.
type DayActivity struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Insights summarises the journal history.
type Insights struct {
	Moods  []MoodShare   `json:"moods"`
	Weekly []DayActivity `json:"weekly"`
}

// Dashboard bundles everything the home screen shows.
type Dashboard struct {
	Streak   Streak   `json:"streak"`
	Insights Insights `json:"insights"`
	Moods    []string `json:"moods"`
	Quote    string   `json:"quote"`
}
