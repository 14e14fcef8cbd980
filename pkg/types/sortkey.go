package types

// SortKey identifies one of the storefront sort orders. Values outside the
// known set are carried through opaquely and produce no sort clause.
type SortKey string

const (
	SortNewest      SortKey = "newest"
	SortNameAsc     SortKey = "name_asc"
	SortNameDesc    SortKey = "name_desc"
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortRecommended SortKey = "recommended"
)

// DefaultSort is the implicit order and is never written to the URL.
const DefaultSort = SortNewest

func (s SortKey) IsDefault() bool {
	return s == DefaultSort || s == ""
}
