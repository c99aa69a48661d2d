package midpoint

import (
	"math"

	"halfway.meetspot.org/internal/geo"
	"halfway.meetspot.org/internal/models"
)

const kmToMiles = 0.621371

// Fairness classification labels. Tier boundaries are on the delta between
// each party's distance to the midpoint, in miles.
const (
	LabelPerfectlyFair  = "Perfectly Fair"
	LabelModeratelyFair = "Moderately Fair"
	LabelUnbalanced     = "Unbalanced"
	LabelUnknown        = "Unknown"
)

// FairnessMetric describes how balanced the two parties' distances to the
// midpoint are. Distances are in miles. Known is false when any input
// location was absent and the metric could not be derived.
type FairnessMetric struct {
	DistanceFromAMiles float64 `json:"distance_from_a_miles"`
	DistanceFromBMiles float64 `json:"distance_from_b_miles"`
	DeltaMiles         float64 `json:"fairness_delta_miles"`
	Label              string  `json:"label"`
	Known              bool    `json:"known"`
}

// Fairness derives the fairness metric for a midpoint between two locations.
// Any nil input yields the neutral unknown state.
func Fairness(a, b, mid *models.Location) FairnessMetric {
	if a == nil || b == nil || mid == nil {
		return FairnessMetric{Label: LabelUnknown}
	}

	da := geo.HaversineDistanceKm(a.Coordinate, mid.Coordinate) * kmToMiles
	db := geo.HaversineDistanceKm(b.Coordinate, mid.Coordinate) * kmToMiles
	delta := math.Abs(da - db)

	return FairnessMetric{
		DistanceFromAMiles: da,
		DistanceFromBMiles: db,
		DeltaMiles:         delta,
		Label:              LabelForDelta(delta),
		Known:              true,
	}
}

// LabelForDelta maps a fairness delta in miles onto its classification tier.
func LabelForDelta(deltaMiles float64) string {
	switch {
	case deltaMiles < 1.0:
		return LabelPerfectlyFair
	case deltaMiles < 3.0:
		return LabelModeratelyFair
	default:
		return LabelUnbalanced
	}
}
