package expression

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	dateLayout      = "2006-01-02"
	timeOfDayLayout = "15:04:05"
)

// Date is a calendar date without time or offset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errors.Wrapf(err, "parse date %q", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall-clock time without date or offset.
type TimeOfDay struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// TimeOfDayOf truncates t to milliseconds.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := timeOfDayLayout
	if len(s) > len(timeOfDayLayout) {
		layout = timeOfDayLayout + ".000"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeOfDay{}, errors.Wrapf(err, "parse time of day %q", s)
	}
	return TimeOfDayOf(t), nil
}

func (t TimeOfDay) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Millisecond != 0 {
		s += fmt.Sprintf(".%03d", t.Millisecond)
	}
	return s
}
