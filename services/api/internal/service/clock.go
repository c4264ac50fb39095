package service

import "time"

// Clock supplies the current time to use cases that apply calendar or window rules.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
