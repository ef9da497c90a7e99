package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hh-server/api"
)

const STATUS_OK = "OK"
const STATUS_ZERO_RESULTS = "ZERO_RESULTS"

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// GoogleGeocodingClient embeds the common HTTPClient
type GoogleGeocodingClient struct {
	*api.HTTPClient
	apiKey string
}

// NewGoogleGeocodingClient creates a new instance of GoogleGeocodingClient
func NewGoogleGeocodingClient(httpClient *api.HTTPClient, apiKey string) *GoogleGeocodingClient {
	return &GoogleGeocodingClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
	}
}

// Geocode resolves address with the Geocoding API and returns the first match.
func (c *GoogleGeocodingClient) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	if c.apiKey == "" {
		return nil, ErrGeocoderDisabled
	}

	params := url.Values{}
	params.Add("address", address)
	params.Add("key", c.apiKey)

	var response geocodeResponse
	if err := c.Request(ctx, http.MethodGet, "/geocode/json?"+params.Encode(), nil, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to call geocoding api: %w", err)
	}

	switch response.Status {
	case STATUS_OK:
	case STATUS_ZERO_RESULTS:
		return nil, ErrNoResults
	default:
		return nil, fmt.Errorf("geocoding api status %s: %s", response.Status, response.ErrorMessage)
	}
	if len(response.Results) == 0 {
		return nil, ErrNoResults
	}

	first := response.Results[0]
	return &GeoPoint{
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
