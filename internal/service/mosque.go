package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Otabek9528/mosque-api/internal/geo"
	"github.com/Otabek9528/mosque-api/internal/geocoding"
	"github.com/Otabek9528/mosque-api/internal/metrics"
	"github.com/Otabek9528/mosque-api/internal/models"
	"github.com/Otabek9528/mosque-api/internal/repository"
)

const (
	// DefaultLimit is the number of results returned when the caller does
	// not specify one.
	DefaultLimit = 5
	// MaxLimit caps the result count regardless of what the caller asks
	// for, bounding response size and query cost.
	MaxLimit = 10
)

// MosqueService plans and executes proximity queries against the
// repository and decorates the results for clients.
type MosqueService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	geocoder     geocoding.Provider   // Geocoding provider for address resolution
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
}

type Interface interface {
	FindNearest(ctx context.Context, lat, lon float64, limit int) ([]models.NearbyMosque, error)
	FindNearestByAddress(ctx context.Context, address string, limit int) (*models.Location, []models.NearbyMosque, error)
	GetDetails(ctx context.Context, id int) (*models.MosqueDetails, error)
	TotalMosques(ctx context.Context) (int, error)
}

// NewMosqueService creates a new instance of MosqueService. It takes a
// logger, a repository interface, a geocoding provider, the provider name
// for metrics labeling, and the application metrics. It returns a pointer
// to the newly created MosqueService.
func NewMosqueService(
	log *slog.Logger,
	repo repository.Interface,
	geocoder geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *MosqueService {
	return &MosqueService{
		log:          log,
		repo:         repo,
		geocoder:     geocoder,
		providerName: providerName,
		metrics:      metrics,
	}
}

// FindNearest returns up to limit mosques nearest to the reference point,
// nearest first. The store orders candidates by the squared-degree proxy
// and applies the LIMIT; each returned record is then decorated with its
// true great-circle distance for display. The already-limited result set
// is deliberately not re-sorted by true distance: near ties at the window
// boundary can occasionally swap in rank between proxy and true distance,
// which is an accepted approximation.
func (s *MosqueService) FindNearest(
	ctx context.Context,
	lat, lon float64,
	limit int,
) ([]models.NearbyMosque, error) {
	limit = clampLimit(limit)

	mosques, err := s.repo.ListNearest(ctx, lat, lon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list nearest mosques: %w", err)
	}

	for i := range mosques {
		mosques[i].DistanceKm = geo.RoundKm(
			geo.Distance(lat, lon, mosques[i].Latitude, mosques[i].Longitude),
		)
	}

	s.log.DebugContext(ctx, "Planned proximity query",
		"lat", lat, "lon", lon, "limit", limit, "results", len(mosques))

	return mosques, nil
}

// FindNearestByAddress resolves a free-text address through the geocoder
// and runs the same proximity query from the resolved coordinate. When
// geocoding yields no candidate it reports geocoding.ErrNoResult rather
// than falling back to any default location.
func (s *MosqueService) FindNearestByAddress(
	ctx context.Context,
	address string,
	limit int,
) (*models.Location, []models.NearbyMosque, error) {
	startTime := time.Now()
	loc, err := s.geocoder.Geocode(ctx, address)
	s.metrics.GeocodeSeconds.WithLabelValues(s.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		if errors.Is(err, geocoding.ErrNoResult) {
			s.log.WarnContext(ctx, "Address could not be resolved", "address", address)
			return nil, nil, err
		}
		s.metrics.GeocodeErrors.Inc()
		return nil, nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	mosques, err := s.FindNearest(ctx, loc.Latitude, loc.Longitude, limit)
	if err != nil {
		return nil, nil, err
	}

	return loc, mosques, nil
}

// GetDetails returns a single mosque by identifier together with its full
// review list and average rating. The average is 0 when there are no
// reviews. repository.ErrNotFound propagates when the identifier does not
// match a record of the target category.
func (s *MosqueService) GetDetails(ctx context.Context, id int) (*models.MosqueDetails, error) {
	mosque, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get mosque details: %w", err)
	}

	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &models.MosqueDetails{
		Mosque:        *mosque,
		AverageRating: averageRating(reviews),
		Reviews:       reviews,
	}, nil
}

// TotalMosques returns the total number of records of the target category.
func (s *MosqueService) TotalMosques(ctx context.Context) (int, error) {
	count, err := s.repo.CountMosques(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count mosques: %w", err)
	}

	return count, nil
}

// averageRating computes the mean rating rounded to one decimal place,
// returning 0 for an empty review list.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum float64
	for _, rev := range reviews {
		sum += rev.Rating
	}

	return math.Round(sum/float64(len(reviews))*10) / 10
}

// clampLimit applies the server-side default and maximum to the requested
// result count.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}
