// Package geo implements the geo resolver port against the Google
// Geocoding API. Forward and reverse lookups share one response shape;
// suburb, state and postcode come from the address components of the
// first result.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

const defaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

const requestTimeout = 10 * time.Second

// GoogleGeocoder resolves addresses and coordinates through the Google
// Geocoding API. Implements ports.GeoResolver.
type GoogleGeocoder struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewGoogleGeocoder creates a geocoder using the given API key. The
// endpoint defaults to the public Geocoding API; pass a non-empty
// endpoint to override it.
func NewGoogleGeocoder(apiKey string, endpoint string) *GoogleGeocoder {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &GoogleGeocoder{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// ResolveAddress geocodes a street address into a location.
func (g *GoogleGeocoder) ResolveAddress(ctx context.Context, address kernel.Address) (kernel.Location, error) {
	query := url.Values{}
	query.Set("address", address.FullString())

	return g.resolve(ctx, query)
}

// ResolveCoordinate reverse-geocodes a point into a location.
func (g *GoogleGeocoder) ResolveCoordinate(ctx context.Context, point kernel.GeoPoint) (kernel.Location, error) {
	query := url.Values{}
	query.Set("latlng", fmt.Sprintf("%f,%f", point.Latitude(), point.Longitude()))

	return g.resolve(ctx, query)
}

func (g *GoogleGeocoder) resolve(ctx context.Context, query url.Values) (kernel.Location, error) {
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("%w: %w", ports.ErrResolutionFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("%w: %w", ports.ErrResolutionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Location{}, fmt.Errorf("%w: geocoding API returned %s", ports.ErrResolutionFailed, resp.Status)
	}

	var body geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.Location{}, fmt.Errorf("%w: %w", ports.ErrResolutionFailed, err)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return kernel.Location{}, fmt.Errorf("%w: geocoding status %q with %d results",
			ports.ErrResolutionFailed, body.Status, len(body.Results))
	}

	return locationFromResult(body.Results[0])
}

func locationFromResult(result geocodeResult) (kernel.Location, error) {
	point, err := kernel.NewGeoPoint(result.Geometry.Location.Lat, result.Geometry.Location.Lng)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("%w: %w", ports.ErrResolutionFailed, err)
	}

	suburb := componentByType(result.AddressComponents, "locality", false)
	postcode := componentByType(result.AddressComponents, "postal_code", false)
	state := componentByType(result.AddressComponents, "administrative_area_level_1", true)

	location, err := kernel.NewLocation(point, suburb, state, postcode)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("%w: %w", ports.ErrResolutionFailed, err)
	}

	return location, nil
}

func componentByType(components []addressComponent, componentType string, short bool) string {
	for _, component := range components {
		if slices.Contains(component.Types, componentType) {
			if short {
				return component.ShortName
			}
			return component.LongName
		}
	}
	return ""
}
