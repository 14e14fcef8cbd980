package types

// PriceRange is an inclusive price interval in the shop currency.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (p PriceRange) IsZero() bool {
	return p.Min == 0 && p.Max == 0
}

// IsDefaultSentinel reports whether the range still carries one of the
// platform placeholder values a store is constructed with, meaning the
// catalog bounds may be adopted over it.
func (p PriceRange) IsDefaultSentinel() bool {
	return (p.Min == 0 && p.Max == 0) || (p.Min == 0 && p.Max == 1000)
}

// FilterCriteria is the applied filter state. SelectedOptions maps option id
// to the selected choice ids; an entry with no choices must not exist.
type FilterCriteria struct {
	PriceRange      PriceRange          `json:"priceRange"`
	SelectedOptions map[string][]string `json:"selectedOptions"`
}

// DefaultFilterCriteria returns the platform defaults used before any
// catalog aggregate or URL state has been seen.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PriceRange:      PriceRange{},
		SelectedOptions: map[string][]string{},
	}
}

// Normalize enforces the criteria invariants: min <= max (a zero max means
// no upper bound) and no empty option entries. It returns the receiver for
// chaining.
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.PriceRange.Max > 0 && c.PriceRange.Min > c.PriceRange.Max {
		c.PriceRange.Min, c.PriceRange.Max = c.PriceRange.Max, c.PriceRange.Min
	}
	if c.SelectedOptions == nil {
		c.SelectedOptions = map[string][]string{}
		return c
	}
	for id, choices := range c.SelectedOptions {
		if len(choices) == 0 {
			delete(c.SelectedOptions, id)
		}
	}
	return c
}

// Clone returns a deep copy so store snapshots can be mutated by callers
// without aliasing the signal value.
func (c FilterCriteria) Clone() FilterCriteria {
	out := FilterCriteria{
		PriceRange:      c.PriceRange,
		SelectedOptions: make(map[string][]string, len(c.SelectedOptions)),
	}
	for id, choices := range c.SelectedOptions {
		cp := make([]string, len(choices))
		copy(cp, choices)
		out.SelectedOptions[id] = cp
	}
	return out
}

func (c FilterCriteria) HasSelections() bool {
	return len(c.SelectedOptions) > 0
}

// Equal compares criteria ignoring choice order.
func (c FilterCriteria) Equal(other FilterCriteria) bool {
	if c.PriceRange != other.PriceRange {
		return false
	}
	if len(c.SelectedOptions) != len(other.SelectedOptions) {
		return false
	}
	for id, choices := range c.SelectedOptions {
		theirs, ok := other.SelectedOptions[id]
		if !ok || len(theirs) != len(choices) {
			return false
		}
		seen := make(map[string]struct{}, len(theirs))
		for _, v := range theirs {
			seen[v] = struct{}{}
		}
		for _, v := range choices {
			if _, ok := seen[v]; !ok {
				return false
			}
		}
	}
	return true
}
