package immunization

import (
	"errors"
	"fmt"
)

var ErrInvalidSchedule = errors.New("invalid vaccination schedule")

// DoseKey identifies a dose occasion by position inside a Table.
type DoseKey struct {
	Vaccine int
	Dose    int
}

// Occasion is one scheduled administration of a vaccine.
type Occasion struct {
	Key     DoseKey
	Vaccine string
	Offset  Offset
}

// Label renders the occasion the way it is stored in status maps
// and shown in exports, e.g. "BCG - 0 weeks".
func (o Occasion) Label() string {
	return o.Vaccine + " - " + o.Offset.Label
}

// Vaccine is a row of the schedule table.
type Vaccine struct {
	Name    string
	Offsets []Offset
}

// Entry is the unparsed form of a schedule row.
type Entry struct {
	Vaccine string
	Offsets []string
}

// Table is an immutable, ordered vaccination schedule.
type Table struct {
	vaccines  []Vaccine
	occasions []Occasion
	byLabel   map[string]DoseKey
}

// NewTable validates and freezes a schedule. Malformed offsets, blank or
// repeated vaccine names and repeated offsets are rejected.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{byLabel: make(map[string]DoseKey)}
	seen := make(map[string]bool, len(entries))

	for vi, e := range entries {
		if e.Vaccine == "" {
			return nil, fmt.Errorf("%w: entry %d has no vaccine name", ErrInvalidSchedule, vi)
		}
		if seen[e.Vaccine] {
			return nil, fmt.Errorf("%w: duplicate vaccine %q", ErrInvalidSchedule, e.Vaccine)
		}
		seen[e.Vaccine] = true

		v := Vaccine{Name: e.Vaccine}
		for di, raw := range e.Offsets {
			off, err := ParseOffset(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, e.Vaccine, err)
			}
			occ := Occasion{Key: DoseKey{Vaccine: vi, Dose: di}, Vaccine: e.Vaccine, Offset: off}
			if _, dup := t.byLabel[occ.Label()]; dup {
				return nil, fmt.Errorf("%w: duplicate dose %q", ErrInvalidSchedule, occ.Label())
			}
			t.byLabel[occ.Label()] = occ.Key
			v.Offsets = append(v.Offsets, off)
			t.occasions = append(t.occasions, occ)
		}
		t.vaccines = append(t.vaccines, v)
	}

	return t, nil
}

// MustNewTable panics when the schedule is malformed.
func MustNewTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// KEPI is the Kenya Expanded Programme on Immunization schedule.
var KEPI = MustNewTable([]Entry{
	{Vaccine: "BCG", Offsets: []string{"0 weeks"}},
	{Vaccine: "OPV", Offsets: []string{"0 weeks", "6 weeks", "10 weeks", "14 weeks"}},
	{Vaccine: "Rotavirus", Offsets: []string{"6 weeks", "10 weeks"}},
	{Vaccine: "Pneumo_conj", Offsets: []string{"6 weeks", "10 weeks", "14 weeks"}},
	{Vaccine: "DTwPHibHepB", Offsets: []string{"6 weeks", "10 weeks", "14 weeks"}},
	{Vaccine: "IPV", Offsets: []string{"14 weeks"}},
	{Vaccine: "Yellow Fever", Offsets: []string{"9 months"}},
	{Vaccine: "Measles", Offsets: []string{"9 months", "18 months"}},
	// the second HPV dose falls due at ten and a half years
	{Vaccine: "HPV", Offsets: []string{"10 years", "10 years 6 months"}},
})

// Vaccines returns the rows in schedule order.
func (t *Table) Vaccines() []Vaccine {
	out := make([]Vaccine, len(t.vaccines))
	copy(out, t.vaccines)
	return out
}

// Occasions returns every dose occasion in schedule order.
func (t *Table) Occasions() []Occasion {
	out := make([]Occasion, len(t.occasions))
	copy(out, t.occasions)
	return out
}

// Occasion resolves a composite key.
func (t *Table) Occasion(key DoseKey) (Occasion, bool) {
	if key.Vaccine < 0 || key.Vaccine >= len(t.vaccines) {
		return Occasion{}, false
	}
	v := t.vaccines[key.Vaccine]
	if key.Dose < 0 || key.Dose >= len(v.Offsets) {
		return Occasion{}, false
	}
	return Occasion{Key: key, Vaccine: v.Name, Offset: v.Offsets[key.Dose]}, true
}

// KeyOf resolves a rendered label back to its composite key.
func (t *Table) KeyOf(label string) (DoseKey, bool) {
	k, ok := t.byLabel[label]
	return k, ok
}
