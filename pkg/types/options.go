package types

// AvailabilityOptionId is the synthetic option holding inventory statuses.
// It is also the fixed URL parameter name for availability selections.
const AvailabilityOptionId = "availability"

// Choice is a single selectable value of a product option.
type Choice struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	ColorCode string `json:"colorCode,omitempty"`
}

// OptionDescriptor describes one filterable product option together with the
// choices actually observed in the live catalog.
type OptionDescriptor struct {
	Id         string   `json:"id"`
	Name       string   `json:"name"`
	Choices    []Choice `json:"choices"`
	RenderType string   `json:"renderType,omitempty"`
}

// AvailableOptions is the derived "what can be filtered on" state: the
// option list and the catalog-wide (or category-scoped) price bounds.
type AvailableOptions struct {
	ProductOptions []OptionDescriptor `json:"productOptions"`
	PriceRange     PriceRange         `json:"priceRange"`
}

// OptionById returns the descriptor for an option id, including the
// synthetic availability option.
func (a AvailableOptions) OptionById(id string) (OptionDescriptor, bool) {
	for _, opt := range a.ProductOptions {
		if opt.Id == id {
			return opt, true
		}
	}
	return OptionDescriptor{}, false
}

// OptionByName matches an option by its display name, case sensitive first
// and falling back to the id. Used when mapping URL parameter names back to
// option ids.
func (a AvailableOptions) OptionByName(name string) (OptionDescriptor, bool) {
	for _, opt := range a.ProductOptions {
		if opt.Name == name || opt.Id == name {
			return opt, true
		}
	}
	return OptionDescriptor{}, false
}
