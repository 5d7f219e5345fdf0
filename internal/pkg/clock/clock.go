package clock

import "time"

// Clock is the single time source the services read from. Injecting it
// lets tests pin "now" instead of sleeping around wall-clock edges.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed is a Clock stuck at a given instant, for tests.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// NewFixed returns a Clock that always reports t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{T: t}
}
