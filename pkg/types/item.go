package types

// ItemPrice carries the price fields the engine reads. All fields are
// optional upstream; a missing amount decodes to zero.
type ItemPrice struct {
	Amount          float64 `json:"amount,omitempty"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty"`
	Currency        string  `json:"currency,omitempty"`
}

// Variant is one purchasable variation of an item, fetched either inline
// with the search result or through the batched variant back-fill.
type Variant struct {
	Id              string            `json:"id"`
	ProductId       string            `json:"productId,omitempty"`
	ChoiceIds       []string          `json:"choiceIds,omitempty"`
	Price           *ItemPrice        `json:"price,omitempty"`
	InventoryStatus string            `json:"inventoryStatus,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// ItemOption is the option/choice assignment present on an item record.
type ItemOption struct {
	Id        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	ChoiceIds []string `json:"choiceIds,omitempty"`
}

// CatalogItem is the slice of the remote catalog record this engine reads.
// Every field can be absent upstream, so everything is zero-tolerant and
// unknown fields are ignored on decode.
type CatalogItem struct {
	Id              string       `json:"id"`
	Name            string       `json:"name,omitempty"`
	Price           *ItemPrice   `json:"price,omitempty"`
	Options         []ItemOption `json:"options,omitempty"`
	Variants        []Variant    `json:"variants,omitempty"`
	VariantCount    int          `json:"variantCount,omitempty"`
	InventoryStatus string       `json:"inventoryStatus,omitempty"`
}

// NeedsVariantData reports whether the item declares variants that were
// elided by the primary query and must be back-filled.
func (i CatalogItem) NeedsVariantData() bool {
	return i.VariantCount > 0 && len(i.Variants) == 0
}

// CollectionPage is one page of search results plus its continuation state.
type CollectionPage struct {
	Items   []CatalogItem `json:"items"`
	Cursor  string        `json:"cursor,omitempty"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
}
