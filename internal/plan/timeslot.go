package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadWeekday = errors.New("unknown day of week")
	ErrBadClock   = errors.New("malformed time")
)

// Weekday is a day label parsed from the wire. Monday is the zero value
// because the planner grid starts the week on Monday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekdays returns Monday through Sunday in grid order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdayNames))
	for i := range weekdayNames {
		out[i] = Weekday(i)
	}
	return out
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadWeekday, s)
}

// ClockTime is minutes since midnight.
type ClockTime int

// ParseClock accepts "H:MM" or "HH:MM" on a 24-hour clock.
func ParseClock(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return ClockTime(hour*60 + minute), nil
}

// String renders the zero-padded wire form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Slot is a session's position in the week as comparable values.
type Slot struct {
	Day   Weekday
	Start ClockTime
	End   ClockTime
}

// Overlaps uses half-open intervals: touching endpoints do not overlap.
func (a Slot) Overlaps(b Slot) bool {
	return a.Day == b.Day && a.Start < b.End && a.End > b.Start
}

func (s Session) Slot() (Slot, error) {
	day, err := ParseWeekday(s.DayOfWeek)
	if err != nil {
		return Slot{}, err
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Day: day, Start: start, End: end}, nil
}
