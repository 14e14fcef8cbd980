package urlstate

import (
	"net/url"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// BrowseParams is the typed view of the well-known browse parameters.
// Option selections stay in the raw Params since their keys are display
// names only known at runtime.
type BrowseParams struct {
	Sort         string   `schema:"sort"`
	MinPrice     float64  `schema:"minPrice"`
	MaxPrice     float64  `schema:"maxPrice"`
	Availability []string `schema:"availability"`
}

// Browse decodes the typed parameters, ignoring unknown keys and falling
// back to zero values for anything malformed.
func (p Params) Browse() BrowseParams {
	result := BrowseParams{}
	// schema still fills the well-formed fields when one value is bad
	_ = decoder.Decode(&result, url.Values(p))
	return result
}
