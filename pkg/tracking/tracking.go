// Package tracking publishes browse interaction events to the analytics
// pipeline. A nil Tracker everywhere means tracking is off.
package tracking

import "github.com/matst80/slask-browse/pkg/types"

type Tracker interface {
	TrackSearch(categoryId string, sort types.SortKey, total int)
	TrackFilter(criteria types.FilterCriteria)
	TrackLoadMore(count int)
}
