package server

import (
	"time"

	"github.com/Otabek9528/mosque-api/internal/models"
)

// mosqueItem is the JSON shape of one nearby result.
type mosqueItem struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	City            string  `json:"city"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	DistanceKm      float64 `json:"distanceKm"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	MapURLPrimary   string  `json:"mapUrlPrimary"`
	MapURLSecondary string  `json:"mapUrlSecondary"`
	Photo           string  `json:"photo"`
	ReviewCount     int     `json:"reviewCount"`
}

// detailItem is the JSON shape of the single-record view. It carries the
// review list instead of a distance.
type detailItem struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	City            string       `json:"city"`
	Address         string       `json:"address"`
	Phone           string       `json:"phone"`
	Lat             float64      `json:"lat"`
	Lon             float64      `json:"lon"`
	MapURLPrimary   string       `json:"mapUrlPrimary"`
	MapURLSecondary string       `json:"mapUrlSecondary"`
	Photo           string       `json:"photo"`
	AverageRating   float64      `json:"averageRating"`
	ReviewCount     int          `json:"reviewCount"`
	Reviews         []reviewItem `json:"reviews"`
}

type reviewItem struct {
	Rating    float64   `json:"rating"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
}

// geocodedLocation echoes the coordinate an address resolved to.
type geocodedLocation struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

func toItems(mosques []models.NearbyMosque) []mosqueItem {
	items := make([]mosqueItem, 0, len(mosques))
	for _, msq := range mosques {
		items = append(items, mosqueItem{
			ID:              msq.ID,
			Name:            msq.Name,
			City:            msq.City,
			Address:         msq.Address,
			Phone:           msq.Phone,
			DistanceKm:      msq.DistanceKm,
			Lat:             msq.Latitude,
			Lon:             msq.Longitude,
			MapURLPrimary:   msq.KakaoMapURL,
			MapURLSecondary: msq.NaverMapURL,
			Photo:           msq.Photo,
			ReviewCount:     msq.ReviewCount,
		})
	}

	return items
}

func toDetailItem(details *models.MosqueDetails) detailItem {
	reviews := make([]reviewItem, 0, len(details.Reviews))
	for _, rev := range details.Reviews {
		reviews = append(reviews, reviewItem{
			Rating:    rev.Rating,
			Text:      rev.Text,
			Timestamp: rev.Timestamp,
			UserID:    rev.UserID,
		})
	}

	return detailItem{
		ID:              details.ID,
		Name:            details.Name,
		City:            details.City,
		Address:         details.Address,
		Phone:           details.Phone,
		Lat:             details.Latitude,
		Lon:             details.Longitude,
		MapURLPrimary:   details.KakaoMapURL,
		MapURLSecondary: details.NaverMapURL,
		Photo:           details.Photo,
		AverageRating:   details.AverageRating,
		ReviewCount:     len(details.Reviews),
		Reviews:         reviews,
	}
}
