package clips

import (
	"fmt"
	"time"
)

// Limits holds the duration tuning for a run. Every generator derives its
// floor/ceiling from these through Bands, never from ad-hoc multipliers.
type Limits struct {
	Min   time.Duration
	Max   time.Duration
	Ideal time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		Min:   10 * time.Second,
		Max:   60 * time.Second,
		Ideal: 30 * time.Second,
	}
}

func (l Limits) Validate() error {
	if l.Min <= 0 {
		return fmt.Errorf("min duration must be > 0")
	}
	if l.Max < l.Min {
		return fmt.Errorf("max duration must be >= min duration")
	}
	if l.Ideal <= 0 {
		return fmt.Errorf("ideal duration must be > 0")
	}
	return nil
}

// Band is a closed duration interval.
type Band struct {
	Min time.Duration
	Max time.Duration
}

func (b Band) Contains(d time.Duration) bool { return d >= b.Min && d <= b.Max }

// Bands are the named duration windows consumed by the generators:
// Strict bounds chapter candidates and rendered clips, Relaxed bounds padded
// text windows, and VeryShort is the absolute floor any emitted candidate
// must clear.
type Bands struct {
	Strict    Band
	Relaxed   Band
	VeryShort time.Duration
}

const veryShortFloor = 5 * time.Second

func (l Limits) Bands() Bands {
	relaxedMin := time.Duration(float64(l.Min) * 0.7)
	if relaxedMin < veryShortFloor {
		relaxedMin = veryShortFloor
	}
	relaxedMax := time.Duration(float64(l.Max) * 1.5)
	if relaxedMax > 60*time.Second {
		relaxedMax = 60 * time.Second
	}
	return Bands{
		Strict:    Band{Min: l.Min, Max: l.Max},
		Relaxed:   Band{Min: relaxedMin, Max: relaxedMax},
		VeryShort: veryShortFloor,
	}
}
