package geocoding

import (
	"context"
	"errors"
)

var (
	ErrGeocoderDisabled = errors.New("geocoder disabled: maps api key not set")
	ErrNoResults        = errors.New("geocoder returned no results")
)

// GeoPoint is a resolved coordinate for an address.
type GeoPoint struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

// Geocoder resolves a free-form street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}
