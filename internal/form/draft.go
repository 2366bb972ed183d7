package form

import (
	"slices"
	"strings"
)

// Size is the pizza size.  The zero value means no size was chosen.
type Size string

const (
	SizeUnset  Size = ""
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the accepted sizes in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// Valid reports whether s is S, M, or L.
func (s Size) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// Draft is the in-progress order.  Toppings holds catalog ids in the order
// they were selected, without duplicates.
type Draft struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	d.Toppings = slices.Clone(d.Toppings)
	return d
}

// Empty reports whether no field has been filled in.
func (d Draft) Empty() bool {
	return d.FullName == "" && d.Size == SizeUnset && len(d.Toppings) == 0
}

// HasTopping reports whether id is selected.
func (d Draft) HasTopping(id string) bool {
	return slices.Contains(d.Toppings, id)
}

// Name returns the full name with surrounding whitespace removed.
func (d Draft) Name() string { return strings.TrimSpace(d.FullName) }

// toggle selects id when absent and removes it when present.
func (d *Draft) toggle(id string) {
	if i := slices.Index(d.Toppings, id); i >= 0 {
		d.Toppings = slices.Delete(d.Toppings, i, i+1)
		return
	}
	d.Toppings = append(d.Toppings, id)
}
