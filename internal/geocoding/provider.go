package geocoding

import (
	"context"
	"errors"

	"github.com/Otabek9528/mosque-api/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and a free-text address as input and
// returns the best-match location (coordinates plus display label) or an
// error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Location, error)
}

// ErrNoResult is returned when the geocoder yields no candidate for the
// given address. Callers treat it as "location not resolvable", which is
// distinct from an upstream provider failure.
var ErrNoResult = errors.New("geocoder returned no result for address")
