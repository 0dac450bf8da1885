package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Otabek9528/mosque-api/internal/geocoding"
	"github.com/Otabek9528/mosque-api/internal/repository"
	"github.com/Otabek9528/mosque-api/internal/service"
	"github.com/gin-gonic/gin"
)

// maxResults is reported by /stats as the per-query result cap.
const maxResults = service.MaxLimit

// health reports liveness. It is never rate-limited.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "mosque-api",
		"version": s.version,
	})
}

// stats reports aggregate, non-sensitive figures for monitoring. It is
// never rate-limited.
func (s *Server) stats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := s.service.TotalMosques(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to collect stats", "error", err)
		s.internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalRecords": total,
			"rateLimit":    fmt.Sprintf("%d requests per %s per IP", s.limiter.Quota(), s.limiter.Window()),
			"maxResults":   maxResults,
		},
	})
}

// nearby serves GET /pois/nearby?lat=..&lon=..&limit=..
func (s *Server) nearby(c *gin.Context) {
	ctx := c.Request.Context()

	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	mosques, err := s.service.FindNearest(ctx, lat, lon, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "Nearby query failed", "error", err, "client", c.ClientIP())
		s.internalError(c)
		return
	}

	items := toItems(mosques)
	s.log.InfoContext(ctx, "Served nearby mosques", "count", len(items), "client", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"items":   items,
	})
}

// byAddress serves GET /pois/by-address?address=..&limit=..
func (s *Server) byAddress(c *gin.Context) {
	ctx := c.Request.Context()

	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Address parameter is required",
		})
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	loc, mosques, err := s.service.FindNearestByAddress(ctx, address, limit)
	if err != nil {
		if errors.Is(err, geocoding.ErrNoResult) {
			s.log.WarnContext(ctx, "Address not found", "address", address, "client", c.ClientIP())
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Address not found",
			})
			return
		}
		s.log.ErrorContext(ctx, "Address query failed", "error", err, "client", c.ClientIP())
		s.internalError(c)
		return
	}

	items := toItems(mosques)
	s.log.InfoContext(ctx, "Served mosques by address",
		"address", address, "count", len(items), "client", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"geocoded": geocodedLocation{
			Lat:         loc.Latitude,
			Lon:         loc.Longitude,
			DisplayName: loc.DisplayName,
		},
		"items": items,
	})
}

// details serves GET /poi/:id
func (s *Server) details(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid id",
		})
		return
	}

	mosqueDetails, err := s.service.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.WarnContext(ctx, "Mosque not found", "id", id, "client", c.ClientIP())
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Mosque not found",
			})
			return
		}
		s.log.ErrorContext(ctx, "Detail query failed", "error", err, "id", id)
		s.internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    toDetailItem(mosqueDetails),
	})
}

// internalError hides upstream failure detail from clients; the cause is
// already logged server-side.
func (s *Server) internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal server error",
	})
}

// parseCoordinates reads the required lat/lon query parameters and
// validates their ranges. Non-finite values (NaN, Inf) never pass, so
// downstream distance math only ever sees finite coordinates. On
// failure it writes a 400 response and returns ok=false.
func parseCoordinates(c *gin.Context) (lat, lon float64, ok bool) {
	var err error

	lat, err = strconv.ParseFloat(c.Query("lat"), 64)
	if err == nil {
		lon, err = strconv.ParseFloat(c.Query("lon"), 64)
	}
	// The comparisons are inverted so NaN fails validation too.
	if err != nil || !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid coordinates provided",
		})
		return 0, 0, false
	}

	return lat, lon, true
}

// parseLimit reads the optional limit query parameter. Zero means
// "unspecified" and lets the service apply its default; the service also
// clamps to its maximum. On a malformed value it writes a 400 response
// and returns ok=false.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid limit provided",
		})
		return 0, false
	}

	return limit, true
}
