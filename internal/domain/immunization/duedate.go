package immunization

import "time"

// DueDate pairs an occasion with its calendar due date.
type DueDate struct {
	Occasion Occasion
	Date     time.Time
}

// Date returns the calendar date of t, read in t's own location, as
// midnight UTC. All schedule arithmetic and comparisons use this form.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueDates computes the due date of every occasion in the table for a child
// born on dob, in schedule order.
func DueDates(dob time.Time, t *Table) []DueDate {
	base := Date(dob)
	out := make([]DueDate, 0, len(t.occasions))
	for _, occ := range t.occasions {
		out = append(out, DueDate{Occasion: occ, Date: occ.Offset.AddTo(base)})
	}
	return out
}

// DueDateMap is DueDates keyed by rendered label.
func DueDateMap(dob time.Time, t *Table) map[string]time.Time {
	dues := DueDates(dob, t)
	out := make(map[string]time.Time, len(dues))
	for _, d := range dues {
		out[d.Occasion.Label()] = d.Date
	}
	return out
}
