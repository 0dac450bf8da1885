package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Otabek9528/mosque-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when no record of the target category matches
// the requested identifier.
var ErrNotFound = errors.New("mosque not found")

// Database is the subset of pgxpool.Pool used by the repository.
// It is satisfied by both *pgxpool.Pool and pgxmock, which keeps the
// repository testable without a live database. Pool lifecycle (ping,
// close) stays with the owner of the concrete pool.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides read access to the mosque and review tables.
// Every query it issues carries the target-category filter, so callers
// can never observe records of another category.
type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	ListNearest(ctx context.Context, lat, lon float64, limit int) ([]models.NearbyMosque, error)
	GetByID(ctx context.Context, id int) (*models.Mosque, error)
	ListReviews(ctx context.Context, mosqueID int) ([]models.Review, error)
	CountMosques(ctx context.Context) (int, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
