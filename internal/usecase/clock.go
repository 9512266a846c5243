package usecase

import (
	"errors"
	"time"

	"immunization-tracker/internal/domain/immunization"
)

var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

const dateLayout = "2006-01-02"

// Clock reads "today" in the clinic's time zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// NewFixedClock always reports the calendar date of t.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Today is the current calendar date in the clinic's zone, as midnight UTC.
func (c *Clock) Today() time.Time {
	return immunization.Date(c.now().In(c.loc))
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}
