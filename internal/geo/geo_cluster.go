package geo

import (
	"fmt"

	"github.com/golang/geo/s2"

	"halfway.meetspot.org/internal/models"
)

const venueCellLevel = 21 // S2 cell level with sub-10m spatial resolution

// VenueClusterKey generates a stable S2-based identity key for a venue that
// the provider returned without a place ID. Two records for the same venue
// land in the same cell and collapse during deduplication.
func VenueClusterKey(name string, c models.Coordinate) string {
	ll := s2.LatLngFromDegrees(c.Latitude, c.Longitude)
	cellID := s2.CellIDFromLatLng(ll).Parent(venueCellLevel)
	return fmt.Sprintf("s2_%d_%s", uint64(cellID), name)
}
