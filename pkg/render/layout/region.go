package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadClock is returned for clock times that are not HH:MM within a day.
var ErrBadClock = errors.New("invalid clock time")

const (
	hoursPerDay    = 24
	minutesPerHour = 60
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() float64 {
	return float64(c.Hour*minutesPerHour + c.Minute)
}

// String formats the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock reads "HH:MM" or "H:MM". 24:00 is accepted as the end of the day.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)

	if errH != nil || errM != nil || h < 0 || m < 0 || m >= minutesPerHour || h > hoursPerDay || (h == hoursPerDay && m != 0) {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	return ClockTime{Hour: h, Minute: m}, nil
}

// Region highlights the same stretch of every day.
type Region struct {
	Start ClockTime
	End   ClockTime
	Color string
}

// Duration returns the region length in minutes. It is negative when End
// precedes Start.
func (r Region) Duration() float64 {
	return r.End.Minutes() - r.Start.Minutes()
}

// Band is a laid out region spanning the plot width.
type Band struct {
	Rect
	Color string
}
