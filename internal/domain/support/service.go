package support

import (
	"math/rand/v2"
	"time"
)

// Breathing describes one breathing cycle in milliseconds.
type Breathing struct {
	InhaleMs int64 `json:"inhaleMs"`
	HoldMs   int64 `json:"holdMs"`
	ExhaleMs int64 `json:"exhaleMs"`
}

// Toolkit is everything the crisis screen renders.
type Toolkit struct {
	Motivation       []string  `json:"motivation"`
	Reasons          []string  `json:"reasons"`
	Breathing        Breathing `json:"breathing"`
	RotateIntervalMs int64     `json:"rotateIntervalMs"`
}

// Service serves static recovery content.
type Service interface {
	DailyQuote() string
	Crisis() Toolkit
}

type service struct {
	pick func(n int) int
}

// NewService returns a Service that picks quotes uniformly at random.
func NewService() Service {
	return &service{pick: rand.IntN}
}

func (s *service) DailyQuote() string {
	return dailyQuotes[s.pick(len(dailyQuotes))]
}

func (s *service) Crisis() Toolkit {
	return Toolkit{
		Motivation: append([]string(nil), motivation...),
		Reasons:    append([]string(nil), reasons...),
		Breathing: Breathing{
			InhaleMs: Inhale.Milliseconds(),
			HoldMs:   Hold.Milliseconds(),
			ExhaleMs: Exhale.Milliseconds(),
		},
		RotateIntervalMs: RotateInterval.Milliseconds(),
	}
}

// CycleLength is the duration of one full breath.
func (b Breathing) CycleLength() time.Duration {
	return time.Duration(b.InhaleMs+b.HoldMs+b.ExhaleMs) * time.Millisecond
}
