package immunization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrMalformedStatus = errors.New("malformed vaccination status")

// StatusMap records, per rendered occasion label, whether the dose was given.
// Absent keys mean "not given". Keys that the current schedule does not know
// about are kept as-is.
type StatusMap map[string]bool

// Merge returns the union of prior and submitted. Submitted values win for
// shared keys; keys only in prior are retained. Neither input is modified.
func Merge(prior, submitted StatusMap) StatusMap {
	out := make(StatusMap, len(prior)+len(submitted))
	for k, v := range prior {
		out[k] = v
	}
	for k, v := range submitted {
		out[k] = v
	}
	return out
}

// DecodeStatusMap parses stored status text. Blank text and JSON null decode
// to an empty map.
func DecodeStatusMap(raw []byte) (StatusMap, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return StatusMap{}, nil
	}

	var m StatusMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return StatusMap{}, fmt.Errorf("%w: %v", ErrMalformedStatus, err)
	}
	if m == nil {
		m = StatusMap{}
	}
	return m, nil
}

// Encode serializes the map for storage.
func (m StatusMap) Encode() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Completed reports whether the occasion is marked as given.
func (m StatusMap) Completed(o Occasion) bool {
	return m[o.Label()]
}

// CompletedLabels lists the given occasions of t in schedule order.
func (m StatusMap) CompletedLabels(t *Table) []string {
	var out []string
	for _, occ := range t.occasions {
		if m.Completed(occ) {
			out = append(out, occ.Label())
		}
	}
	return out
}

// Unknown lists stored keys the table has no occasion for, sorted.
func (m StatusMap) Unknown(t *Table) []string {
	var out []string
	for k := range m {
		if _, ok := t.KeyOf(k); !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
