package utils

import "time"

// Clock supplies the current UTC time. Services take it as a dependency so
// tests can pin timestamps, order dates and OTP expiry.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// RealClock is the production clock.
var RealClock Clock = realClock{}
