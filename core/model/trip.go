package model

import (
	"fmt"
	"time"
)

// Trip is one service order for a scheduling day. Trips are owned by the
// persistence layer; the planning core only reads them.
type Trip struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Time        time.Time `json:"time,omitempty"` // zero value means unscheduled
	Pax         int       `json:"pax"`
	Pickup      string    `json:"pickup,omitempty"`
	SaleRef     string    `json:"sale_ref,omitempty"`
	Client      string    `json:"client,omitempty"`
}

// HasTime reports whether the trip carries a scheduled clock-time.
func (t Trip) HasTime() bool { return !t.Time.IsZero() }

// MinutesOfDay returns the scheduled time as minutes since midnight.
// The result is meaningless when HasTime is false.
func (t Trip) MinutesOfDay() int {
	return t.Time.Hour()*60 + t.Time.Minute()
}

// Validate checks that the trip record is sound.
func (t Trip) Validate() error {
	if t.Description == "" {
		return fmt.Errorf("trip %d: description is required", t.ID)
	}
	if t.Pax < 0 {
		return fmt.Errorf("trip %d: passenger count must be non-negative", t.ID)
	}
	return nil
}

// ParseClock parses a "HH:MM" clock string onto a synthetic common date so
// trips from one day compare by time of day only. An empty string yields the
// zero time (unscheduled).
func ParseClock(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return time.Date(2000, 1, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}
