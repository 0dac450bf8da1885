package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/Otabek9528/mosque-api/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listNearestQuery = `
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

var mosqueColumns = []string{
	"id", "name", "city", "address", "phone",
	"latitude", "longitude", "kakao_map_url", "naver_map_url", "photo_path",
}

func nearbyColumns() []string {
	return append(append([]string{}, mosqueColumns...), "review_count")
}

func TestListNearest(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	lat, lon := 37.5665, 126.9780
	limit := 5

	t.Run("error - query nearest mosques", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listNearestQuery)).
			WithArgs(lat, lon, limit).
			WillReturnError(assert.AnError)

		mosques, err := repo.ListNearest(ctx, lat, lon, limit)

		require.Nil(t, mosques)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query nearest mosques")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan nearest mosque row", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listNearestQuery)).
			WithArgs(lat, lon, limit).
			WillReturnRows(
				pgxmock.NewRows(nearbyColumns()).
					AddRow("invalid_id", "Seoul Central Masjid", "Seoul", "39 Usadan-ro 10-gil", "02-793-6908",
						37.5326, 126.9970, "https://kko.to/x", "https://naver.me/y", "photos/1.jpg", 3),
			)

		mosques, err := repo.ListNearest(ctx, lat, lon, limit)

		require.Nil(t, mosques)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to scan nearest mosque row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listNearestQuery)).
			WithArgs(lat, lon, limit).
			WillReturnRows(
				pgxmock.NewRows(nearbyColumns()).
					AddRow(1, "Seoul Central Masjid", "Seoul", "39 Usadan-ro 10-gil", "02-793-6908",
						37.5326, 126.9970, "https://kko.to/x", "https://naver.me/y", "photos/1.jpg", 3).
					RowError(1, assert.AnError),
			)

		mosques, err := repo.ListNearest(ctx, lat, lon, limit)

		require.Nil(t, mosques)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - proxy order preserved", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listNearestQuery)).
			WithArgs(lat, lon, limit).
			WillReturnRows(
				pgxmock.NewRows(nearbyColumns()).
					AddRow(1, "Seoul Central Masjid", "Seoul", "39 Usadan-ro 10-gil", "02-793-6908",
						37.5326, 126.9970, "https://kko.to/x", "https://naver.me/y", "photos/1.jpg", 3).
					AddRow(7, "Bupyeong Masjid", "Incheon", "12 Mugyang-ro", "",
						37.5070, 126.7219, "", "", "", 0),
			)

		mosques, err := repo.ListNearest(ctx, lat, lon, limit)

		require.NoError(t, err)
		require.Len(t, mosques, 2)
		assert.Equal(t, 1, mosques[0].ID)
		assert.Equal(t, "Seoul Central Masjid", mosques[0].Name)
		assert.Equal(t, 3, mosques[0].ReviewCount)
		assert.Equal(t, 7, mosques[1].ID)
		assert.Zero(t, mosques[1].ReviewCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
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

	t.Run("error - unknown id maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(999).
			WillReturnRows(pgxmock.NewRows(mosqueColumns))

		mosque, err := repo.GetByID(ctx, 999)

		require.Nil(t, mosque)
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - query failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(1).
			WillReturnError(assert.AnError)

		mosque, err := repo.GetByID(ctx, 1)

		require.Nil(t, mosque)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query mosque by id")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - get mosque by id", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(1).
			WillReturnRows(
				pgxmock.NewRows(mosqueColumns).
					AddRow(1, "Seoul Central Masjid", "Seoul", "39 Usadan-ro 10-gil", "02-793-6908",
						37.5326, 126.9970, "https://kko.to/x", "https://naver.me/y", "photos/1.jpg"),
			)

		mosque, err := repo.GetByID(ctx, 1)

		require.NoError(t, err)
		require.NotNil(t, mosque)
		assert.Equal(t, 1, mosque.ID)
		assert.Equal(t, "Seoul", mosque.City)
		assert.InEpsilon(t, 37.5326, mosque.Latitude, 1e-9)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListReviews(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		SELECT rv.rating, COALESCE(rv.body, ''), rv.created_at, rv.user_id
		FROM reviews rv
		WHERE rv.poi_id = $1
		ORDER BY rv.created_at DESC;
	`

	t.Run("error - query reviews", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(1).
			WillReturnError(assert.AnError)

		reviews, err := repo.ListReviews(ctx, 1)

		require.Nil(t, reviews)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query reviews")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - no reviews yields empty slice", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(2).
			WillReturnRows(pgxmock.NewRows([]string{"rating", "body", "created_at", "user_id"}))

		reviews, err := repo.ListReviews(ctx, 2)

		require.NoError(t, err)
		assert.Empty(t, reviews)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - list reviews newest first", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		newer := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
		older := time.Date(2025, 5, 30, 9, 30, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs(1).
			WillReturnRows(
				pgxmock.NewRows([]string{"rating", "body", "created_at", "user_id"}).
					AddRow(5.0, "Beautiful mosque", newer, "user-17").
					AddRow(4.0, "Friendly community", older, "user-3"),
			)

		reviews, err := repo.ListReviews(ctx, 1)

		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.InEpsilon(t, 5.0, reviews[0].Rating, 1e-9)
		assert.Equal(t, "user-17", reviews[0].UserID)
		assert.Equal(t, newer, reviews[0].Timestamp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountMosques(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `SELECT COUNT(*) FROM pois WHERE category = 'mosque';`

	t.Run("error - count failure", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnError(assert.AnError)

		count, err := repo.CountMosques(ctx)

		require.Zero(t, count)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to count mosques")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - count mosques", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(350))

		count, err := repo.CountMosques(ctx)

		require.NoError(t, err)
		assert.Equal(t, 350, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
