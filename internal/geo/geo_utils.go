package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"

	"halfway.meetspot.org/internal/models"
)

// EarthRadiusKm represents the mean radius of the Earth in kilometers.
//
// This value (6371.0 km) is defined as the Earth's volumetric mean radius,
// which is commonly used for general geospatial calculations and spherical
// approximations.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when a latitude or longitude falls outside
// the valid geographic range.
var ErrInvalidCoordinate = errors.New("invalid coordinate: latitude must be in [-90, 90], longitude in [-180, 180]")

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(r float64) float64 {
	return r * 180 / math.Pi
}

// IsValidCoordinate returns true if the coordinate falls within the valid
// geographic bounds.
func IsValidCoordinate(c models.Coordinate) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// ValidateCoordinate rejects out-of-range coordinates with
// ErrInvalidCoordinate. Invalid values are never clamped.
func ValidateCoordinate(c models.Coordinate) error {
	if !IsValidCoordinate(c) {
		return ErrInvalidCoordinate
	}
	return nil
}

// HaversineDistanceKm calculates the great-circle distance between two
// coordinates in kilometers. The result is symmetric in its arguments and
// zero for identical coordinates.
func HaversineDistanceKm(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// CartesianMidpoint computes the weighted midpoint of two coordinates on the
// unit sphere. Both points are converted to Cartesian vectors, averaged with
// the given weights, and converted back via atan2. The summed vector is not
// renormalized; the angular conversion is independent of its magnitude.
//
// Weights must be non-negative and sum to a positive number. Callers
// normalize weights before invoking.
func CartesianMidpoint(a, b models.Coordinate, weightA, weightB float64) models.Coordinate {
	va := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Latitude, a.Longitude)).Vector
	vb := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Latitude, b.Longitude)).Vector

	sum := va.Mul(weightA).Add(vb.Mul(weightB))

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum})
	return models.Coordinate{
		Latitude:  ll.Lat.Degrees(),
		Longitude: ll.Lng.Degrees(),
	}
}
