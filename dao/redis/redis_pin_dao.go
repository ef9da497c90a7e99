package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hh-server/api/geocoding"
	"hh-server/db"
	"hh-server/models/pin"
)

const PINS_GEO_KEY_FORMAT_V1 = "pins_geo_v1:%d"
const PINS_GEO_MEMBER_FORMAT_V1 = "pins_geo_place_v1:%d:%d"

// GEOCODE_CACHE_KEY_FORMAT caches geocoder answers per normalized address.
const GEOCODE_CACHE_KEY_FORMAT = "geocode_v1:%s"

// RedisPinDAO handles map pin operations using Redis.
type RedisPinDAO struct {
	client db.RedisClient
}

// NewRedisPinDAO initializes a RedisPinDAO with the Redis client.
func NewRedisPinDAO(client db.RedisClient) *RedisPinDAO {
	return &RedisPinDAO{client: client}
}

// UpsertPin stores the pin as a geolocation of its generation's set.
func (dao *RedisPinDAO) UpsertPin(p pin.Pin) error {
	ctx := dao.client.GetContext()
	geoKey := fmt.Sprintf(PINS_GEO_KEY_FORMAT_V1, p.Generation)
	member := fmt.Sprintf(PINS_GEO_MEMBER_FORMAT_V1, p.Generation, p.RecordID)
	if err := dao.client.AddLocationWithJSON(ctx, geoKey, member, p.Lat, p.Lon, p); err != nil {
		return fmt.Errorf("[RedisPinDAO] failed to upsert pin %d: %w", p.RecordID, err)
	}
	return nil
}

// GetPin returns the pin of a record, or nil when it has not been placed yet.
func (dao *RedisPinDAO) GetPin(generation uint64, recordID int) (*pin.Pin, error) {
	member := fmt.Sprintf(PINS_GEO_MEMBER_FORMAT_V1, generation, recordID)
	str, err := dao.client.Get(member)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pin from redis: %w", err)
	}
	var p pin.Pin
	if err := json.Unmarshal([]byte(str), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pin JSON: %w", err)
	}
	return &p, nil
}

// GetPins returns every pin of a generation ordered by record id.
func (dao *RedisPinDAO) GetPins(generation uint64) ([]pin.Pin, error) {
	pinsJSON, err := dao.client.GetAllLocations(fmt.Sprintf(PINS_GEO_KEY_FORMAT_V1, generation))
	if err != nil {
		return nil, fmt.Errorf("[RedisPinDAO] failed to get pins: %w", err)
	}
	return decodePins(pinsJSON)
}

// GetNearbyPins retrieves pins of a generation within radius km.
func (dao *RedisPinDAO) GetNearbyPins(generation uint64, lat, lon, radius float64) ([]pin.Pin, error) {
	pinsJSON, err := dao.client.GetLocationsWithinRadius(fmt.Sprintf(PINS_GEO_KEY_FORMAT_V1, generation), lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisPinDAO] failed to get nearby pins: %w", err)
	}
	return decodePins(pinsJSON)
}

// DeleteGeneration drops the geo set and all pin payloads of a generation.
func (dao *RedisPinDAO) DeleteGeneration(generation uint64) error {
	pattern := fmt.Sprintf("pins_geo_place_v1:%d:*", generation)
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return fmt.Errorf("failed to list pin keys: %w", err)
	}
	keys = append(keys, fmt.Sprintf(PINS_GEO_KEY_FORMAT_V1, generation))
	if err := dao.client.Del(keys...); err != nil {
		return fmt.Errorf("failed to delete pins of generation %d: %w", generation, err)
	}
	return nil
}

// SetCachedGeocode stores a geocoder answer for address.
func (dao *RedisPinDAO) SetCachedGeocode(address string, point geocoding.GeoPoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal geocode for %q: %w", address, err)
	}
	if err := dao.client.Set(geocodeCacheKey(address), string(data)); err != nil {
		return fmt.Errorf("failed to set geocode in redis: %w", err)
	}
	return nil
}

// GetCachedGeocode returns the cached answer for address, or nil on a miss.
func (dao *RedisPinDAO) GetCachedGeocode(address string) (*geocoding.GeoPoint, error) {
	str, err := dao.client.Get(geocodeCacheKey(address))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get geocode from redis: %w", err)
	}
	var point geocoding.GeoPoint
	if err := json.Unmarshal([]byte(str), &point); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geocode JSON: %w", err)
	}
	return &point, nil
}

func geocodeCacheKey(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	return fmt.Sprintf(GEOCODE_CACHE_KEY_FORMAT, normalized)
}

func decodePins(pinsJSON []string) ([]pin.Pin, error) {
	pins := make([]pin.Pin, len(pinsJSON))
	for i, pinJSON := range pinsJSON {
		if err := json.Unmarshal([]byte(pinJSON), &pins[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pin JSON: %w", err)
		}
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].RecordID < pins[j].RecordID })
	return pins, nil
}
