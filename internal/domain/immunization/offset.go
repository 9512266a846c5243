package immunization

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidOffset = errors.New("invalid dose offset")

// Offset is the age at which a dose falls due, counted from the date of birth.
// Labels such as "6 weeks", "9 months" or "10 years 6 months" are accepted.
type Offset struct {
	Label  string
	Weeks  int
	Months int
	Years  int
}

// ParseOffset parses one or more "<N> <unit>" terms. The unit word must
// name weeks, months or years; anything else is rejected.
func ParseOffset(label string) (Offset, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, label)
	}

	off := Offset{Label: strings.Join(fields, " ")}
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			return Offset{}, fmt.Errorf("%w: %q: bad magnitude %q", ErrInvalidOffset, label, fields[i])
		}

		unit := strings.ToLower(fields[i+1])
		switch {
		case strings.Contains(unit, "week"):
			off.Weeks += n
		case strings.Contains(unit, "month"):
			off.Months += n
		case strings.Contains(unit, "year"):
			off.Years += n
		default:
			return Offset{}, fmt.Errorf("%w: %q: unknown unit %q", ErrInvalidOffset, label, fields[i+1])
		}
	}

	return off, nil
}

// MustParseOffset is ParseOffset for static tables; it panics on error.
func MustParseOffset(label string) Offset {
	off, err := ParseOffset(label)
	if err != nil {
		panic(err)
	}
	return off
}

func (o Offset) String() string {
	return o.Label
}

// AddTo returns date advanced by the offset. Years and months are calendar
// months clamped to the last day of the target month (Jan 31 + 1 month is
// the last day of February); weeks are 7-day blocks applied afterwards.
func (o Offset) AddTo(date time.Time) time.Time {
	d := addMonths(date, o.Years*12+o.Months)
	return d.AddDate(0, 0, 7*o.Weeks)
}

func addMonths(date time.Time, months int) time.Time {
	if months == 0 {
		return date
	}

	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
