// Package places wraps the external places/geocoding provider. The Provider
// interface is the abstract capability consumed by the search coordinator;
// Client implements it against a Google-Places-style web service. All
// "stringly-typed" provider response handling is isolated here; the rest of
// the system only sees parsed models.Venue values.
package places

import (
	"context"

	"halfway.meetspot.org/internal/models"
)

// MaxRadiusMeters is the largest search radius the provider accepts.
const MaxRadiusMeters = 50000

// Provider is the external places capability. Implementations translate
// these calls into a concrete provider's wire format. It is always passed in
// explicitly; there is no ambient global client.
type Provider interface {
	// SearchNearby returns up to one page of raw venue records around the
	// given center for a single category tag.
	SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]RawVenue, error)

	// Autocomplete returns place suggestions for partial query text.
	Autocomplete(ctx context.Context, query string) ([]Suggestion, error)

	// Geocode resolves a free-form address into a Location.
	Geocode(ctx context.Context, address string) (models.Location, error)

	// ReverseGeocode resolves a coordinate into an addressed Location.
	ReverseGeocode(ctx context.Context, c models.Coordinate) (models.Location, error)
}

// Suggestion is one autocomplete prediction.
type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// RawVenue mirrors one result object from the provider's nearby-search
// response. Optional fields are pointers so that absence survives decoding.
type RawVenue struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Geometry         Geometry      `json:"geometry"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	Photos           []Photo       `json:"photos,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Types            []string      `json:"types"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
	Icon             string        `json:"icon,omitempty"`
}

// Geometry holds the venue position.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is the provider's coordinate pair encoding.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo is one photo attachment on a venue record.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

// OpeningHours carries the optional open-now flag.
type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}
