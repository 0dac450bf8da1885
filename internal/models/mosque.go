package models

import "time"

// Mosque represents a single point-of-interest record of the target
// category, as stored in the database.
type Mosque struct {
	ID           int     // ID is the unique identifier of the record.
	Name         string  // Name is the display name of the mosque.
	City         string  // City is the English city name.
	Address      string  // Address is the free-text street address.
	Phone        string  // Phone is the contact number, may be empty.
	Latitude     float64 // Latitude in decimal degrees.
	Longitude    float64 // Longitude in decimal degrees.
	KakaoMapURL  string  // KakaoMapURL is the primary external map link.
	NaverMapURL  string  // NaverMapURL is the secondary external map link.
	Photo        string  // Photo is the stored photo path, may be empty.
}

// NearbyMosque is a per-request query result: a mosque joined with its
// review count and the true great-circle distance from the reference
// point. It is never persisted.
type NearbyMosque struct {
	Mosque

	ReviewCount int     // Number of reviews attached to the record.
	DistanceKm  float64 // Great-circle distance from the reference point, km.
}

// MosqueDetails is the single-record view: the mosque plus its full
// review list and the average rating across those reviews.
type MosqueDetails struct {
	Mosque

	AverageRating float64  // Mean review rating, 0 when there are no reviews.
	Reviews       []Review // All reviews, newest first.
}

// Review represents a single user review attached to a mosque.
type Review struct {
	Rating    float64   // Rating value as submitted, expected 1-5.
	Text      string    // Free-text review body.
	Timestamp time.Time // When the review was created.
	UserID    string    // Identifier of the submitting user.
}
