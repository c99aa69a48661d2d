package places

import (
	"fmt"

	"halfway.meetspot.org/internal/geo"
	"halfway.meetspot.org/internal/models"
	"halfway.meetspot.org/internal/present"
)

// ParseVenue maps one raw provider record onto the immutable Venue type.
// Records without a name or with out-of-range coordinates are rejected;
// optional fields default to their zero values. The price level integer is
// mapped to its symbolic tier here so nothing downstream sees raw levels.
func ParseVenue(raw RawVenue) (models.Venue, error) {
	if raw.Name == "" {
		return models.Venue{}, fmt.Errorf("venue record %q has no name", raw.PlaceID)
	}

	coord := models.Coordinate{
		Latitude:  raw.Geometry.Location.Lat,
		Longitude: raw.Geometry.Location.Lng,
	}
	if err := geo.ValidateCoordinate(coord); err != nil {
		return models.Venue{}, fmt.Errorf("venue %q: %w", raw.Name, err)
	}

	v := models.Venue{
		PlaceID:     raw.PlaceID,
		Name:        raw.Name,
		Address:     raw.FormattedAddress,
		Vicinity:    raw.Vicinity,
		Coordinate:  coord,
		Rating:      raw.Rating,
		RatingCount: raw.UserRatingsTotal,
		Categories:  append([]string(nil), raw.Types...),
		IconURL:     raw.Icon,
	}

	if len(raw.Photos) > 0 {
		v.PhotoReference = raw.Photos[0].PhotoReference
	}
	if raw.OpeningHours != nil && raw.OpeningHours.OpenNow != nil {
		v.OpenNow = *raw.OpeningHours.OpenNow
	}
	if raw.PriceLevel != nil {
		v.PriceTier = present.PriceTierLabel(*raw.PriceLevel)
	}

	return v, nil
}

// DedupeKey returns the identity key used to collapse duplicate records.
// Venues missing a place ID fall back to an S2 cell key derived from their
// name and position.
func DedupeKey(v models.Venue) string {
	if v.PlaceID != "" {
		return v.PlaceID
	}
	return geo.VenueClusterKey(v.Name, v.Coordinate)
}
