package immunization

import "time"

// UpcomingWindow is how far ahead Upcoming looks, in days.
const UpcomingWindow = 7

// Bucket classifies a single occasion relative to today.
type Bucket string

const (
	BucketDueToday Bucket = "due_today"
	BucketOverdue  Bucket = "overdue"
	BucketUpcoming Bucket = "upcoming"
	BucketNone     Bucket = ""
)

// Classify places an occasion due on due into a bucket. A due date of today
// is always due-today, whether or not the dose was given. A past due date is
// overdue only while the dose is not given.
func Classify(due, today time.Time, completed bool) Bucket {
	due, today = Date(due), Date(today)
	horizon := today.AddDate(0, 0, UpcomingWindow)

	switch {
	case due.Equal(today):
		return BucketDueToday
	case due.Before(today) && !completed:
		return BucketOverdue
	case due.After(today) && !due.After(horizon):
		return BucketUpcoming
	default:
		return BucketNone
	}
}

// Record is the per-child input of Summarize.
type Record struct {
	DateOfBirth time.Time
	Status      StatusMap
}

// Summary holds the dashboard counters.
type Summary struct {
	Registered int `json:"registered"`
	DueToday   int `json:"due_today"`
	Upcoming   int `json:"upcoming_7_days"`
	Overdue    int `json:"overdue"`
	Completed  int `json:"completed"`
}

// Summarize scans every child against the schedule. Completed counts given
// doses that exist in the table.
func Summarize(records []Record, t *Table, today time.Time) Summary {
	s := Summary{Registered: len(records)}
	for _, r := range records {
		for _, d := range DueDates(r.DateOfBirth, t) {
			done := r.Status.Completed(d.Occasion)
			if done {
				s.Completed++
			}
			switch Classify(d.Date, today, done) {
			case BucketDueToday:
				s.DueToday++
			case BucketOverdue:
				s.Overdue++
			case BucketUpcoming:
				s.Upcoming++
			}
		}
	}
	return s
}
