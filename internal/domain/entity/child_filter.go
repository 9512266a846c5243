package entity

import "time"

// ChildFilter is a domain-level filter for listing children.
// Zero values mean "no constraint".
type ChildFilter struct {
	Name      string // ILIKE
	Gender    string
	Residence string // ILIKE
	BornFrom  *time.Time
	BornTo    *time.Time
}
