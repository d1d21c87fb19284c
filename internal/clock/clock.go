package clock

import "time"

// Clock supplies the current instant. The storage engine never reads the
// system time directly, so tests can substitute a manual clock and drive
// expiry deterministically.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation used outside of tests.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now()
}

// Manual is a clock frozen at an explicit instant. Advance and Set move it;
// nothing else does.
type Manual struct {
	now time.Time
}

// NewManual creates a manual clock positioned at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the clock forward (or backward, with a negative d).
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set repositions the clock at an absolute instant.
func (m *Manual) Set(t time.Time) {
	m.now = t
}
