package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a minutes/seconds duration as shown on the timer face.
// Seconds is conventionally in [0,59] but is not validated; a malformed
// clock produces a malformed total, which is the caller's responsibility.
type Clock struct {
	Minutes int
	Seconds int
}

// TotalSeconds returns the clock as a flat second count.
func (c Clock) TotalSeconds() int {
	return c.Minutes*60 + c.Seconds
}

// Duration returns the clock as a time.Duration.
func (c Clock) Duration() time.Duration {
	return time.Duration(c.TotalSeconds()) * time.Second
}

// IsZero reports whether the clock reads 00:00.
func (c Clock) IsZero() bool {
	return c.Minutes == 0 && c.Seconds == 0
}

// String formats the clock as MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

// ClockFromSeconds converts a flat second count into a clock.
// Negative counts clamp to zero.
func ClockFromSeconds(total int) Clock {
	if total < 0 {
		total = 0
	}
	return Clock{Minutes: total / 60, Seconds: total % 60}
}

// ParseClock parses "M:SS", "MM:SS" or a bare minute count ("7").
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, fmt.Errorf("empty duration")
	}

	if i := strings.IndexByte(s, ':'); i >= 0 {
		m, err := strconv.Atoi(s[:i])
		if err != nil {
			return Clock{}, fmt.Errorf("invalid minutes in %q: %w", s, err)
		}
		sec, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Clock{}, fmt.Errorf("invalid seconds in %q: %w", s, err)
		}
		return Clock{Minutes: m, Seconds: sec}, nil
	}

	m, err := strconv.Atoi(s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return Clock{Minutes: m}, nil
}
