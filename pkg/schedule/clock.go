package schedule

import "time"

// Clock abstracts wall-clock reads so the hours oracle and the reactivation
// scheduler can be driven with a fixed instant in tests.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

func SystemClock() Clock {
	return ClockFunc(time.Now)
}

func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
