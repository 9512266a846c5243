// Package catalog holds the static vaccine reference data: what each vaccine
// protects against, how it is given and what to watch for afterwards.
//
// The catalog document may be JSON or YAML and may be written either as a
// list of records, each carrying a "name" field, or as a mapping keyed by
// vaccine name. Both forms parse into the same ordered Catalog; document
// order is kept because Lookup resolves ambiguous questions by it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrMalformedCatalog = errors.New("malformed vaccine catalog")
	ErrVaccineNotFound  = errors.New("vaccine not found in catalog")
)

//go:embed vaccine_info.json
var defaultDocument []byte

// StringList accepts either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// Vaccine describes one catalog entry.
type Vaccine struct {
	Name                  string     `yaml:"name" json:"name"`
	ScheduledAge          string     `yaml:"Scheduled Age" json:"scheduled_age"`
	ProtectsAgainst       StringList `yaml:"Protects Against" json:"protects_against"`
	Type                  string     `yaml:"Type" json:"type"`
	Route                 string     `yaml:"Route" json:"route"`
	SideEffects           StringList `yaml:"Common Side Effects" json:"side_effects"`
	SpecialConsiderations StringList `yaml:"Special Considerations" json:"special_considerations"`
}

// Catalog is immutable once parsed.
type Catalog struct {
	entries []Vaccine
	index   map[string]int
}

// Parse builds a Catalog from a JSON or YAML document.
func Parse(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedCatalog)
	}

	c := &Catalog{index: make(map[string]int)}
	doc := root.Content[0]

	switch doc.Kind {
	case yaml.SequenceNode:
		for i, item := range doc.Content {
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: record %d is not a mapping", ErrMalformedCatalog, i)
			}
			var v Vaccine
			if err := item.Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedCatalog, i, err)
			}
			if strings.TrimSpace(v.Name) == "" {
				return nil, fmt.Errorf("%w: record %d has no name", ErrMalformedCatalog, i)
			}
			if err := c.add(v); err != nil {
				return nil, err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key, value := doc.Content[i], doc.Content[i+1]
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("%w: entry %q is not a mapping", ErrMalformedCatalog, key.Value)
			}
			var v Vaccine
			if err := value.Decode(&v); err != nil {
				return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformedCatalog, key.Value, err)
			}
			v.Name = key.Value
			if strings.TrimSpace(v.Name) == "" {
				return nil, fmt.Errorf("%w: entry %d has an empty name", ErrMalformedCatalog, i/2)
			}
			if err := c.add(v); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: must be a list of vaccine records or a mapping keyed by vaccine name", ErrMalformedCatalog)
	}

	return c, nil
}

func (c *Catalog) add(v Vaccine) error {
	if _, dup := c.index[v.Name]; dup {
		return fmt.Errorf("%w: duplicate vaccine %q", ErrMalformedCatalog, v.Name)
	}
	c.index[v.Name] = len(c.entries)
	c.entries = append(c.entries, v)
	return nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the bundled KEPI catalog.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in document order.
func (c *Catalog) Entries() []Vaccine {
	out := make([]Vaccine, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry with exactly this name.
func (c *Catalog) Get(name string) (Vaccine, error) {
	i, ok := c.index[name]
	if !ok {
		return Vaccine{}, ErrVaccineNotFound
	}
	return c.entries[i], nil
}

// Lookup returns the first entry, in document order, whose name occurs in
// query ignoring case.
func (c *Catalog) Lookup(query string) (Vaccine, error) {
	q := strings.ToLower(query)
	for _, v := range c.entries {
		if strings.Contains(q, strings.ToLower(v.Name)) {
			return v, nil
		}
	}
	return Vaccine{}, ErrVaccineNotFound
}
