// Package clock supplies wall-clock time to the command line front end.
//
// The otp package never reads the clock itself; callers hand it a Unix time.
// Commands depend on Clocker so a fixed instant can be substituted with --at
// or in tests.
package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

// At returns a Fixed clock for Unix time sec.
func At(sec int64) Fixed {
	return Fixed(time.Unix(sec, 0))
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
