package model

// SortBy selects the ordering applied after filtering.
type SortBy string

const (
	SortNone    SortBy = ""
	SortPopular SortBy = "popular"
	SortNewest  SortBy = "newest"
	SortRating  SortBy = "rating"
	SortUsage   SortBy = "usage"
)

// SearchFilters is the set of predicates and the sort order applied to the
// prompt collection during one browse/search interaction.
//
// Zero values mean "not active": an empty Category or AIModel, a Rating of 0
// and an empty Tags slice apply no restriction.
type SearchFilters struct {
	Category string   `json:"category,omitempty"`
	AIModel  string   `json:"aiModel,omitempty"`
	Rating   float64  `json:"rating,omitempty"` // minimum threshold
	Tags     []string `json:"tags,omitempty"`
	SortBy   SortBy   `json:"sortBy,omitempty"`
}
