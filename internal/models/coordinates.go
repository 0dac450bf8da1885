package models

// Coordinates represents a geographical point in decimal degrees.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point.
	Longitude float64 // Longitude of the geographical point.
}

// Location is a geocoded place: coordinates plus the display label
// the geocoder resolved the free-text query to.
type Location struct {
	Coordinates
	DisplayName string // Human-readable label returned by the geocoder.
}
