package booking

import (
	"strings"
	"time"
)

const MaxLocationLength = 200

type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot checks only ordering; call Validate for the full rule set.
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open intervals, so back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

type Location struct {
	value string
}

func NewLocation(s string) (Location, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Location{}, ErrEmptyLocation
	}
	if len([]rune(t)) > MaxLocationLength {
		return Location{}, ErrLocationTooLong
	}
	return Location{value: t}, nil
}

func (l Location) String() string {
	return l.value
}
