package booking

import (
	"errors"
	"time"
)

var (
	ErrPastStart    = errors.New("start date must be in the future")
	ErrInvalidRange = errors.New("end date must be after start date")
	ErrTooShort     = errors.New("booking must be at least 1 hour long")
)

const MinDuration = time.Hour

// Validate checks a requested rental interval against now. The first failing
// rule wins: past start, then range order, then minimum duration.
func Validate(start, end, now time.Time) error {
	if !start.After(now) {
		return ErrPastStart
	}
	if !end.After(start) {
		return ErrInvalidRange
	}
	if end.Sub(start) < MinDuration {
		return ErrTooShort
	}
	return nil
}
