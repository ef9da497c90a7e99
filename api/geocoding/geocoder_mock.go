package geocoding

import (
	"context"
	"hash/fnv"
	"sync"
)

// Default center of the mocked city (Atlanta, GA).
const MOCK_CENTER_LAT = 33.7490
const MOCK_CENTER_LNG = -84.3880

// GeocoderMock derives stable fake coordinates from the address text.
type GeocoderMock struct {
	mu       sync.Mutex
	failures map[string]error
	calls    map[string]int
}

// NewGeocoderMock creates a new instance of GeocoderMock
func NewGeocoderMock() *GeocoderMock {
	return &GeocoderMock{
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// FailFor makes every lookup of address return err.
func (m *GeocoderMock) FailFor(address string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[address] = err
}

// Calls returns how many times address was looked up.
func (m *GeocoderMock) Calls(address string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[address]
}

func (m *GeocoderMock) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	m.mu.Lock()
	m.calls[address]++
	err := m.failures[address]
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := fnv.New32a()
	h.Write([]byte(address))
	sum := h.Sum32()

	// spread within roughly +/- 0.05 degrees of the center
	dLat := float64(int(sum%1000)-500) / 10000
	dLng := float64(int((sum/1000)%1000)-500) / 10000

	return &GeoPoint{
		Lat:              MOCK_CENTER_LAT + dLat,
		Lng:              MOCK_CENTER_LNG + dLng,
		FormattedAddress: address,
	}, nil
}
