package clock

import "time"

// Clock supplies the current time so expiry checks can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// New returns a Clock backed by the system wall clock.
func New() Clock { return realClock{} }
