package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GeoRedisClient struct holds the Redis client and context
type GeoRedisClient struct {
	client *redis.Client
	ctx    context.Context
	logger *zap.Logger
}

// NewGeoRedisClient wraps client and checks the connection.
func NewGeoRedisClient(ctx context.Context, client *redis.Client, logger *zap.Logger) (*GeoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	logger = logger.Named("GeoRedisClient")
	logger.Info("Connected to Redis")

	return &GeoRedisClient{
		client: client,
		ctx:    ctx,
		logger: logger,
	}, nil
}

// Set sets a key-value pair in Redis
func (r *GeoRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *GeoRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return val, err
}

// AddLocationWithJSON stores geolocation along with associated JSON data.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	}).Result(); err != nil {
		return fmt.Errorf("failed to add geolocation: %w", err)
	}

	// The JSON payload lives under the member name.
	if err := r.client.Set(ctx, memberKey, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set JSON data: %w", err)
	}

	r.logger.Debug("Added geolocation and JSON", zap.String("member", memberKey))
	return nil
}

// GetLocationsWithinRadius finds all members within radius km and returns their JSON data.
func (r *GeoRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	results, err := r.client.GeoRadius(r.ctx, key, lon, lat, &redis.GeoRadiusQuery{
		Radius: radius,
		Unit:   "km",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}

	names := make([]string, 0, len(results))
	for _, loc := range results {
		names = append(names, loc.Name)
	}
	return r.loadMembers(names), nil
}

// GetAllLocations returns the JSON data of every member of the geo set.
func (r *GeoRedisClient) GetAllLocations(key string) ([]string, error) {
	// geo sets are sorted sets underneath
	names, err := r.client.ZRange(r.ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return r.loadMembers(names), nil
}

func (r *GeoRedisClient) loadMembers(names []string) []string {
	var objects []string
	for _, name := range names {
		data, err := r.client.Get(r.ctx, name).Result()
		if err != nil {
			r.logger.Warn("Skipping member", zap.String("member", name), zap.Error(err))
			continue
		}
		objects = append(objects, data)
	}
	return objects
}

func (r *GeoRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

func (r *GeoRedisClient) Del(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(r.ctx, keys...).Err()
}

func (r *GeoRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *GeoRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}
