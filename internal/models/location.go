package models

// Coordinate represents a geographic point in decimal degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// validation lives in the geo package so that values are rejected at the
// boundary instead of silently clamped.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location couples a Coordinate with optional identity fields. It represents
// a user-supplied starting point, a computed midpoint, or a venue position.
//
// Locations are value types: updates create a new instance rather than
// mutating in place.
type Location struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name,omitempty"`
	Address           string     `json:"address,omitempty"`
	Coordinate        Coordinate `json:"coordinate"`
	IsCurrentLocation bool       `json:"is_current_location,omitempty"`
}

// NewLocation creates a named Location at the given coordinates.
func NewLocation(name string, lat, lng float64) Location {
	return Location{
		Name:       name,
		Coordinate: Coordinate{Latitude: lat, Longitude: lng},
	}
}

// WithName returns a copy of the location carrying the given name.
func (l Location) WithName(name string) Location {
	l.Name = name
	return l
}

// WithAddress returns a copy of the location carrying the given address.
func (l Location) WithAddress(address string) Location {
	l.Address = address
	return l
}
