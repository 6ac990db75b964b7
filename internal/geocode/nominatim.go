package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// FallbackAccuracy is the accuracy (meters) reported when reverse geocoding
// fails and raw coordinates are returned instead of an address
const FallbackAccuracy = 1000.0

// resolvedAccuracy is reported when the geocoder returns a usable address
const resolvedAccuracy = 10.0

// Result is a resolved (or degraded) reverse-geocoding lookup
type Result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Accuracy  float64 `json:"accuracy"` // meters
}

// Client resolves coordinates to addresses via a Nominatim-compatible service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a reverse-geocoding client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse resolves a coordinate pair to an address. It never fails: on any
// error (network, non-200, parse) it degrades to raw coordinates with
// "Unknown" city and country so location updates are never blocked on the
// external service.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) Result {
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lon))

	endpoint := fmt.Sprintf("%s/reverse?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fallback(lat, lon, err)
	}
	req.Header.Set("User-Agent", "educafric-tracking/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback(lat, lon, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback(lat, lon, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.fallback(lat, lon, err)
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	if city == "" {
		city = "Unknown"
	}

	country := body.Address.Country
	if country == "" {
		country = "Unknown"
	}

	address := body.DisplayName
	if address == "" {
		address = coordString(lat, lon)
	}

	return Result{
		Latitude:  lat,
		Longitude: lon,
		Address:   address,
		City:      city,
		Country:   country,
		Accuracy:  resolvedAccuracy,
	}
}

func (c *Client) fallback(lat, lon float64, err error) Result {
	log.Printf("[Geocode] Reverse geocoding failed, using coordinates: %v", err)
	return Result{
		Latitude:  lat,
		Longitude: lon,
		Address:   coordString(lat, lon),
		City:      "Unknown",
		Country:   "Unknown",
		Accuracy:  FallbackAccuracy,
	}
}

func coordString(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}
