package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/educafric/tracking-backend-go/internal/geocode"
	"github.com/educafric/tracking-backend-go/internal/service"
	"github.com/educafric/tracking-backend-go/pkg/response"
)

// GeocodeHandler handles reverse-geocoding lookups and city reference data
type GeocodeHandler struct {
	geocoder service.Geocoder
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(geocoder service.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

// Reverse handles GET /api/tracking/geocode/reverse?lat=..&lon=..
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		response.BadRequest(c, "lat and lon query parameters are required")
		return
	}

	response.Success(c, h.geocoder.Reverse(c.Request.Context(), lat, lon))
}

// Cities handles GET /api/tracking/geocode/cities
func (h *GeocodeHandler) Cities(c *gin.Context) {
	response.Success(c, geocode.AfricanCities())
}
