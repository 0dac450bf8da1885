package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Otabek9528/mosque-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// ListNearest retrieves up to limit mosques ordered by squared-coordinate
// distance from the reference point. The squared-degree expression is a
// cheap monotonic proxy for true distance: it lets the database sort with
// a computed expression and a LIMIT instead of a geospatial index, which
// is accurate enough at single-country scale. Each row is joined with its
// review count; the true great-circle distance is decorated later by the
// service layer.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - lat, lon: The reference coordinate in decimal degrees.
// - limit: The maximum number of records to retrieve.
//
// Returns:
// - A slice of models.NearbyMosque ordered nearest first (proxy order).
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) ListNearest(
	ctx context.Context,
	lat, lon float64,
	limit int,
) ([]models.NearbyMosque, error) {
	var mosques []models.NearbyMosque
	query := `
		SELECT
			m.id, m.name, m.city,
			COALESCE(m.address, ''), COALESCE(m.phone, ''),
			m.latitude, m.longitude,
			COALESCE(m.kakao_map_url, ''), COALESCE(m.naver_map_url, ''),
			COALESCE(m.photo_path, ''),
			(SELECT COUNT(*) FROM reviews rv WHERE rv.poi_id = m.id) AS review_count
		FROM pois m
		WHERE m.category = 'mosque'
		ORDER BY
			(m.latitude - $1) * (m.latitude - $1) +
			(m.longitude - $2) * (m.longitude - $2) ASC
		LIMIT $3;
	`

	rows, err := r.db.Query(ctx, query, lat, lon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearest mosques: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msq models.NearbyMosque
		if errScan := rows.Scan(
			&msq.ID, &msq.Name, &msq.City, &msq.Address, &msq.Phone,
			&msq.Latitude, &msq.Longitude,
			&msq.KakaoMapURL, &msq.NaverMapURL, &msq.Photo,
			&msq.ReviewCount,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan nearest mosque row: %w", errScan)
		}
		mosques = append(mosques, msq)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched nearest mosques", "count", len(mosques))

	return mosques, nil
}

// GetByID retrieves a single mosque by identifier. It returns ErrNotFound
// when the identifier does not exist or belongs to a record of another
// category.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.Mosque, error) {
	var msq models.Mosque
	query := `
		SELECT
			m.id, m.name, m.city,
			COALESCE(m.address, ''), COALESCE(m.phone, ''),
			m.latitude, m.longitude,
			COALESCE(m.kakao_map_url, ''), COALESCE(m.naver_map_url, ''),
			COALESCE(m.photo_path, '')
		FROM pois m
		WHERE m.id = $1 AND m.category = 'mosque';
	`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&msq.ID, &msq.Name, &msq.City, &msq.Address, &msq.Phone,
		&msq.Latitude, &msq.Longitude,
		&msq.KakaoMapURL, &msq.NaverMapURL, &msq.Photo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query mosque by id: %w", err)
	}

	return &msq, nil
}

// ListReviews retrieves all reviews attached to the given mosque,
// newest first.
func (r *Repository) ListReviews(ctx context.Context, mosqueID int) ([]models.Review, error) {
	var reviews []models.Review
	query := `
		SELECT rv.rating, COALESCE(rv.body, ''), rv.created_at, rv.user_id
		FROM reviews rv
		WHERE rv.poi_id = $1
		ORDER BY rv.created_at DESC;
	`

	rows, err := r.db.Query(ctx, query, mosqueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rev models.Review
		if errScan := rows.Scan(&rev.Rating, &rev.Text, &rev.Timestamp, &rev.UserID); errScan != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", errScan)
		}
		reviews = append(reviews, rev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return reviews, nil
}

// CountMosques returns the total number of records of the target category.
func (r *Repository) CountMosques(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM pois WHERE category = 'mosque';`

	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mosques: %w", err)
	}

	return count, nil
}
