package grounds

import (
	"strings"

	apperrors "github.com/roadpenalty/appealcore/pkg/errors"
)

// Catalog is an immutable set of appeal ground definitions. The zero value is
// not usable; construct one with NewCatalog or Default.
type Catalog struct {
	defs  []Definition
	byID  map[string]int
	order map[string]int
}

// NewCatalog builds a catalog from the given definitions, preserving
// declaration order. Duplicate IDs are rejected.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, len(defs)),
		byID:  make(map[string]int, len(defs)),
		order: make(map[string]int, len(defs)),
	}
	copy(c.defs, defs)
	for i, d := range c.defs {
		if d.ID == "" {
			return nil, apperrors.New(apperrors.ErrCodeGroundInvalid, "ground definition missing id")
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, apperrors.New(apperrors.ErrCodeGroundInvalid, "duplicate ground id").WithDetail("id=" + d.ID)
		}
		c.byID[d.ID] = i
		c.order[d.ID] = i
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultDefinitions)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every definition in declaration order. The returned slice is a
// copy and safe to retain.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len reports the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }

// ByID looks up a definition by its identifier.
func (c *Catalog) ByID(id string) (Definition, error) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, apperrors.New(apperrors.ErrCodeGroundNotFound, "ground not found").WithDetail("id=" + id)
	}
	return c.defs[i], nil
}

// Has reports whether id names a definition in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Order returns the declaration position of id, used as a stable tie-break
// when ranking grounds with equal weight. Unknown IDs sort last.
func (c *Catalog) Order(id string) int {
	if i, ok := c.order[id]; ok {
		return i
	}
	return len(c.defs)
}

// ByCategory returns all definitions of the given category, in declaration
// order.
func (c *Catalog) ByCategory(cat Category) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// HighStrength returns the definitions assessed as high strength.
func (c *Catalog) HighStrength() []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Strength == High {
			out = append(out, d)
		}
	}
	return out
}

// Search returns definitions whose title, description or scenario phrases
// contain the query, case-insensitively, in declaration order. An empty or
// whitespace-only query matches nothing.
func (c *Catalog) Search(query string) []Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Definition
	for _, d := range c.defs {
		if c.matches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) matches(d Definition, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Description), q) {
		return true
	}
	for _, s := range d.Scenarios {
		ls := strings.ToLower(s)
		// Scenario phrases are matched in both directions: a long user
		// description contains the phrase, or a short query appears
		// within it.
		if strings.Contains(ls, q) || strings.Contains(q, ls) {
			return true
		}
	}
	return false
}
