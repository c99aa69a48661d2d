package geo

import (
	"math"
	"testing"

	"halfway.meetspot.org/internal/models"
)

func TestHaversineDistanceKm(t *testing.T) {
	newYork := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}

	t.Run("Symmetric", func(t *testing.T) {
		ab := HaversineDistanceKm(newYork, losAngeles)
		ba := HaversineDistanceKm(losAngeles, newYork)
		if ab != ba {
			t.Errorf("expected symmetric distance, got %v and %v", ab, ba)
		}
	})

	t.Run("IdenticalCoordinates", func(t *testing.T) {
		if d := HaversineDistanceKm(newYork, newYork); d != 0 {
			t.Errorf("expected 0 for identical coordinates, got %v", d)
		}
	})

	t.Run("KnownDistance", func(t *testing.T) {
		// NYC to LA is roughly 3936 km great-circle.
		d := HaversineDistanceKm(newYork, losAngeles)
		if d < 3900 || d > 3980 {
			t.Errorf("expected NYC-LA distance near 3936 km, got %v", d)
		}
	})

	t.Run("NonNegative", func(t *testing.T) {
		coords := []models.Coordinate{
			{Latitude: 0, Longitude: 0},
			{Latitude: -90, Longitude: 180},
			{Latitude: 90, Longitude: -180},
			{Latitude: 37.7749, Longitude: -122.4194},
		}
		for _, a := range coords {
			for _, b := range coords {
				if d := HaversineDistanceKm(a, b); d < 0 || math.IsNaN(d) {
					t.Errorf("distance(%v, %v) = %v, want non-negative", a, b, d)
				}
			}
		}
	})
}

func TestCartesianMidpoint(t *testing.T) {
	newYork := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}

	t.Run("EqualWeights", func(t *testing.T) {
		mid := CartesianMidpoint(newYork, losAngeles, 0.5, 0.5)

		// Equal-weight midpoint of NYC and LA lands in the mid-continental US.
		if mid.Latitude < 38 || mid.Latitude > 41 {
			t.Errorf("expected latitude near 39.5, got %v", mid.Latitude)
		}
		if mid.Longitude < -101 || mid.Longitude > -97 {
			t.Errorf("expected longitude near -99.5, got %v", mid.Longitude)
		}

		// Both endpoints should be near-equidistant from the midpoint.
		da := HaversineDistanceKm(mid, newYork)
		db := HaversineDistanceKm(mid, losAngeles)
		if math.Abs(da-db) > 5 {
			t.Errorf("expected equidistant midpoint, got %v km and %v km", da, db)
		}
	})

	t.Run("FullWeightOnOnePoint", func(t *testing.T) {
		mid := CartesianMidpoint(newYork, losAngeles, 1.0, 0.0)
		if math.Abs(mid.Latitude-newYork.Latitude) > 1e-9 ||
			math.Abs(mid.Longitude-newYork.Longitude) > 1e-9 {
			t.Errorf("expected midpoint at New York, got %+v", mid)
		}
	})
}

func TestDegreeRadianConversion(t *testing.T) {
	for _, d := range []float64{-180, -90, 0, 45, 90, 180} {
		got := RadiansToDegrees(DegreesToRadians(d))
		if math.Abs(got-d) > 1e-12 {
			t.Errorf("round trip of %v degrees gave %v", d, got)
		}
	}
	if r := DegreesToRadians(180); math.Abs(r-math.Pi) > 1e-12 {
		t.Errorf("expected 180 degrees = pi radians, got %v", r)
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		coord   models.Coordinate
		wantErr bool
	}{
		{"valid", models.Coordinate{Latitude: 47.6, Longitude: -122.3}, false},
		{"null island is valid", models.Coordinate{Latitude: 0, Longitude: 0}, false},
		{"latitude too high", models.Coordinate{Latitude: 90.1, Longitude: 0}, true},
		{"latitude too low", models.Coordinate{Latitude: -91, Longitude: 0}, true},
		{"longitude too high", models.Coordinate{Latitude: 0, Longitude: 180.5}, true},
		{"longitude too low", models.Coordinate{Latitude: 0, Longitude: -181}, true},
		{"boundary values", models.Coordinate{Latitude: -90, Longitude: 180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.coord)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%+v) error = %v, wantErr %v", tt.coord, err, tt.wantErr)
			}
		})
	}
}

func TestVenueClusterKey(t *testing.T) {
	a := models.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	// A point a fraction of a meter away should land in the same cell.
	b := models.Coordinate{Latitude: 37.7749000001, Longitude: -122.4194000001}
	far := models.Coordinate{Latitude: 37.7849, Longitude: -122.4094}

	if VenueClusterKey("Cafe", a) != VenueClusterKey("Cafe", b) {
		t.Error("expected near-identical coordinates to share a cluster key")
	}
	if VenueClusterKey("Cafe", a) == VenueClusterKey("Cafe", far) {
		t.Error("expected distant coordinates to have distinct cluster keys")
	}
	if VenueClusterKey("Cafe", a) == VenueClusterKey("Bar", a) {
		t.Error("expected different venue names to have distinct cluster keys")
	}
}
