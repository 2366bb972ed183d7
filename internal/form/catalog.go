package form

import "strings"

// NoToppings is the confirmation text used when a draft selects nothing.
const NoToppings = "no toppings"

// Topping is one purchasable topping.
type Topping struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog is the fixed, ordered topping list.  It is read-only after
// construction and safe for concurrent use.
type Catalog struct {
	toppings []Topping
	labels   map[string]string
}

// NewCatalog copies ts into a new Catalog.  Later duplicates of an id are
// ignored.
func NewCatalog(ts []Topping) *Catalog {
	c := &Catalog{
		toppings: make([]Topping, 0, len(ts)),
		labels:   make(map[string]string, len(ts)),
	}
	for _, t := range ts {
		if _, dup := c.labels[t.ID]; dup {
			continue
		}
		c.toppings = append(c.toppings, t)
		c.labels[t.ID] = t.Label
	}
	return c
}

// DefaultCatalog returns the catalog of the embedded form definition.
func DefaultCatalog() *Catalog { return DefaultDefinition().Catalog() }

// Toppings returns the catalog in display order.
func (c *Catalog) Toppings() []Topping {
	out := make([]Topping, len(c.toppings))
	copy(out, c.toppings)
	return out
}

// Len reports the number of toppings.
func (c *Catalog) Len() int { return len(c.toppings) }

// Label returns the label for id.
func (c *Catalog) Label(id string) (string, bool) {
	l, ok := c.labels[id]
	return l, ok
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.labels[id]
	return ok
}

// Unknown returns the ids not present in the catalog, in input order.
func (c *Catalog) Unknown(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !c.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// Describe maps ids to labels and joins them with commas.  An empty
// selection yields NoToppings.  Ids missing from the catalog are shown as-is.
func (c *Catalog) Describe(ids []string) string {
	if len(ids) == 0 {
		return NoToppings
	}
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := c.labels[id]; ok {
			labels = append(labels, l)
			continue
		}
		labels = append(labels, id)
	}
	return strings.Join(labels, ", ")
}
