package models

// SortOption selects the ordering applied to a venue list.
type SortOption string

const (
	SortByDistance  SortOption = "distance"
	SortByRating    SortOption = "rating"
	SortByPriceAsc  SortOption = "price_asc"
	SortByPriceDesc SortOption = "price_desc"
)

// ParseSortOption maps a request string onto a SortOption. The second return
// value reports whether the input named a known option.
func ParseSortOption(s string) (SortOption, bool) {
	switch SortOption(s) {
	case SortByDistance, SortByRating, SortByPriceAsc, SortByPriceDesc:
		return SortOption(s), true
	}
	return "", false
}

// Venue is a candidate meeting place returned by the places provider.
//
// Venues are parsed once from the provider response and never mutated;
// they live only for the duration of a search session. PlaceID is the
// provider-assigned unique key used for deduplication. Rating and
// RatingCount are pointers because the provider omits them for unrated
// venues, and the ranker needs to distinguish "no rating" from 0.0.
type Venue struct {
	PlaceID                string     `json:"place_id"`
	Name                   string     `json:"name"`
	Address                string     `json:"address,omitempty"`
	Vicinity               string     `json:"vicinity,omitempty"`
	Coordinate             Coordinate `json:"coordinate"`
	Rating                 *float64   `json:"rating,omitempty"`
	RatingCount            *int       `json:"rating_count,omitempty"`
	PhotoReference         string     `json:"photo_reference,omitempty"`
	OpenNow                bool       `json:"open_now"`
	Categories             []string   `json:"categories"`
	PriceTier              string     `json:"price_tier,omitempty"`
	IconURL                string     `json:"icon_url,omitempty"`
	DistanceFromMidpointKm float64    `json:"distance_from_midpoint_km"`
}

// HasCategory reports whether the venue carries the given category tag.
func (v Venue) HasCategory(tag string) bool {
	for _, t := range v.Categories {
		if t == tag {
			return true
		}
	}
	return false
}
