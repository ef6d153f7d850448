package data

import "time"

// TimeProvider supplies creation timestamps so tests can pin them.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using the system clock.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now().UTC() }

// FixedTimeProvider always returns the same instant.
type FixedTimeProvider struct {
	T time.Time
}

func (f FixedTimeProvider) Now() time.Time { return f.T }

func nowOrReal(tp TimeProvider) TimeProvider {
	if tp == nil {
		return RealTimeProvider{}
	}
	return tp
}
