package deal

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the code of a weekday that can carry a happy hour deal.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
)

// Weekdays lists the deal days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseWeekday accepts a weekday code ("mon".."fri"), case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// WeekdayFromTime maps a calendar day (0=Sunday..6=Saturday) to a deal day.
// Weekends report false.
func WeekdayFromTime(d time.Weekday) (Weekday, bool) {
	if d < time.Monday || d > time.Friday {
		return "", false
	}
	return Weekdays[int(d)-int(time.Monday)], true
}

// Index returns the calendar-order position of the weekday, or -1.
func (w Weekday) Index() int {
	for i, d := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}
