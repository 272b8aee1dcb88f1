package journal

import "strings"

// MaxMoods caps the personalised mood list.
const MaxMoods = 8

// DefaultMoods seeds the list for users who have not logged a custom mood.
func DefaultMoods() []string {
	return []string{"Anxious", "Stressed", "Bored", "Craving", "Hopeful", "Tired", "Lonely", "Angry"}
}

// AddMood prepends mood unless the list already holds it (ignoring case).
// The second result is false when the list is unchanged.
func AddMood(list []string, mood string) ([]string, bool) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return list, false
	}
	for _, existing := range list {
		if strings.EqualFold(existing, mood) {
			return list, false
		}
	}
	out := make([]string, 0, MaxMoods)
	out = append(out, mood)
	for _, existing := range list {
		if len(out) == MaxMoods {
			break
		}
		out = append(out, existing)
	}
	return out, true
}
