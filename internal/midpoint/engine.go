// Package midpoint computes geographic and weighted midpoints between two
// locations, plus the fairness metric describing how balanced the two
// parties' distances are.
//
// Like the geo package, everything here is pure, synchronous CPU work.
package midpoint

import (
	"errors"

	"halfway.meetspot.org/internal/geo"
	"halfway.meetspot.org/internal/models"
)

// ErrInvalidWeight is returned when a weight is negative or the weights sum
// to zero.
var ErrInvalidWeight = errors.New("invalid weight: weights must be non-negative and sum to a positive number")

// midpointName is attached to every computed midpoint location.
const midpointName = "Midpoint"

// Geographic computes the equal-weight midpoint between two locations.
// It fails only if either input carries out-of-range coordinates.
func Geographic(a, b models.Location) (models.Location, error) {
	if err := geo.ValidateCoordinate(a.Coordinate); err != nil {
		return models.Location{}, err
	}
	if err := geo.ValidateCoordinate(b.Coordinate); err != nil {
		return models.Location{}, err
	}

	c := geo.CartesianMidpoint(a.Coordinate, b.Coordinate, 0.5, 0.5)
	return models.Location{Name: midpointName, Coordinate: c}, nil
}

// Weighted computes a midpoint biased by per-party weights. Weights are
// normalized before use and applied crosswise: point A's vector is scaled by
// B's normalized share and point B's vector by A's. The product has always
// shipped with this inversion and downstream behavior depends on it, so it
// is preserved rather than corrected here.
func Weighted(a, b models.Location, weightA, weightB float64) (models.Location, error) {
	if weightA < 0 || weightB < 0 || weightA+weightB == 0 {
		return models.Location{}, ErrInvalidWeight
	}
	if err := geo.ValidateCoordinate(a.Coordinate); err != nil {
		return models.Location{}, err
	}
	if err := geo.ValidateCoordinate(b.Coordinate); err != nil {
		return models.Location{}, err
	}

	total := weightA + weightB
	normA := weightA / total
	normB := weightB / total

	c := geo.CartesianMidpoint(a.Coordinate, b.Coordinate, normB, normA)
	return models.Location{Name: midpointName, Coordinate: c}, nil
}

// DistanceKm returns the great-circle distance between two locations in
// kilometers.
func DistanceKm(a, b models.Location) float64 {
	return geo.HaversineDistanceKm(a.Coordinate, b.Coordinate)
}
