package support

import "time"

var dailyQuotes = []string{
	"Recovery is not a race. You don't have to be perfect, you just have to be honest.",
	"Rock bottom became the solid foundation on which I rebuilt my life.",
	"It does not matter how slowly you go as long as you do not stop.",
	"Your best days are ahead of you. The movie isn't over yet.",
}

var motivation = []string{
	"This urge will pass. You are stronger than it.",
	"Think about why you started.",
	"One minute at a time. You can do anything for one minute.",
	"Recovery is not a straight line. Stay the course.",
	"You deserve a life free from this.",
	"Focus on your breath, not the noise in your head.",
}

var reasons = []string{
	"For my family",
	"To save money",
	"To feel healthy again",
	"To be proud of myself",
}

// Breathing cadence for the SOS screen.
const (
	Inhale         = 4 * time.Second
	Hold           = 2 * time.Second
	Exhale         = 4 * time.Second
	RotateInterval = 8 * time.Second
)
