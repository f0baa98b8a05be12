// Package geo resolves location names to coordinates through the Nominatim
// HTTP API. Lookups are best-effort: the service treats every failure as
// "coordinates unknown" and callers must never fail an operation because a
// lookup did not succeed.
package geo

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"meridian/internal/middleware"

	"resty.dev/v3"
)

const (
	searchPath  = "/search"
	reversePath = "/reverse"

	lookupTimeout = 5 * time.Second
)

// Location is a resolved place: coordinates plus the canonical address
// Nominatim knows it by.
type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Client is a Nominatim geocoding client.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a geocoding client for the given Nominatim base URL.
// userAgent is required; Nominatim's usage policy rejects anonymous clients.
func NewClient(baseURL, userAgent string) *Client {
	client := resty.New().
		SetTimeout(lookupTimeout).
		SetHeader("User-Agent", userAgent)

	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// nominatim returns coordinates as JSON strings
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up coordinates for a location name. It returns (nil, nil)
// when the name is empty, unknown, or the lookup fails for any reason.
func (c *Client) Resolve(ctx context.Context, locationName string) (*Location, error) {
	if locationName == "" {
		return nil, nil
	}

	var results []searchResult
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"q":      locationName,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get(c.baseURL + searchPath)
	if err != nil || res.IsError() {
		middleware.GeocoderLookups.WithLabelValues("error").Inc()
		slog.Warn("geocoder lookup failed",
			slog.String("location", locationName),
			slog.Any("error", err),
		)
		return nil, nil
	}

	if len(results) == 0 {
		middleware.GeocoderLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		middleware.GeocoderLookups.WithLabelValues("error").Inc()
		return nil, nil
	}

	middleware.GeocoderLookups.WithLabelValues("hit").Inc()
	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Address:   results[0].DisplayName,
	}, nil
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

// ReverseLookup returns the display name for a coordinate pair, or "" when
// nothing is known about it or the lookup fails.
func (c *Client) ReverseLookup(ctx context.Context, latitude, longitude float64) string {
	var result reverseResult
	res, err := c.r(ctx).
		SetQueryParams(map[string]string{
			"lat":    strconv.FormatFloat(latitude, 'f', -1, 64),
			"lon":    strconv.FormatFloat(longitude, 'f', -1, 64),
			"format": "json",
		}).
		SetResult(&result).
		Get(c.baseURL + reversePath)
	if err != nil || res.IsError() {
		middleware.GeocoderLookups.WithLabelValues("error").Inc()
		return ""
	}
	if result.DisplayName != "" {
		middleware.GeocoderLookups.WithLabelValues("hit").Inc()
	}
	return result.DisplayName
}
