package services

import (
	"context"
	"sync"

	"hh-server/api/geocoding"
	"hh-server/dao/redis"
	"hh-server/models/pin"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerationGuard tells whether a record still belongs to the live data set.
type GenerationGuard interface {
	IsCurrent(generation uint64, recordID int) bool
}

// MapService geocodes record addresses into pins in the background and
// tracks the selected pin.
type MapService struct {
	pinDao   *redis.RedisPinDAO
	geocoder geocoding.Geocoder
	guard    GenerationGuard
	logger   *zap.Logger

	tasks   errgroup.Group
	pending sync.WaitGroup

	mu       sync.Mutex
	floor    uint64 // generations below floor were purged
	selected *pin.Pin
}

// NewMapService constructs a MapService running at most concurrency
// geocodes at a time.
func NewMapService(
	pinDao *redis.RedisPinDAO,
	geocoder geocoding.Geocoder,
	guard GenerationGuard,
	concurrency int,
	logger *zap.Logger,
) *MapService {
	if concurrency < 1 {
		concurrency = 1
	}
	ms := &MapService{
		pinDao:   pinDao,
		geocoder: geocoder,
		guard:    guard,
		logger:   logger.Named("MapService"),
	}
	ms.tasks.SetLimit(concurrency)
	return ms
}

// RequestPin schedules geocoding of address for (generation, recordID) and
// returns immediately. Completion order across requests is not defined.
func (ms *MapService) RequestPin(generation uint64, recordID int, address string) {
	ms.pending.Add(1)
	go func() {
		defer ms.pending.Done()
		// Go blocks while the concurrency limit is reached
		ms.tasks.Go(func() error {
			ms.resolvePin(context.Background(), generation, recordID, address)
			return nil
		})
	}()
}

// Wait blocks until every requested pin has been resolved or dropped.
func (ms *MapService) Wait() {
	ms.pending.Wait()
	_ = ms.tasks.Wait()
}

func (ms *MapService) resolvePin(ctx context.Context, generation uint64, recordID int, address string) {
	if !ms.guard.IsCurrent(generation, recordID) {
		ms.logger.Debug("Skipping pin for stale record", zap.Uint64("generation", generation), zap.Int("id", recordID))
		return
	}

	point, err := ms.lookup(ctx, address)
	if err != nil {
		ms.logger.Warn("Geocode failed, record will have no pin",
			zap.Int("id", recordID), zap.String("address", address), zap.Error(err))
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if generation < ms.floor || !ms.guard.IsCurrent(generation, recordID) {
		ms.logger.Debug("Dropping late pin for replaced data set", zap.Uint64("generation", generation), zap.Int("id", recordID))
		return
	}

	p := pin.Pin{
		Generation: generation,
		RecordID:   recordID,
		Address:    address,
		Lat:        point.Lat,
		Lon:        point.Lng,
	}
	if err := ms.pinDao.UpsertPin(p); err != nil {
		ms.logger.Error("Failed to store pin", zap.Int("id", recordID), zap.Error(err))
		return
	}
	ms.logger.Debug("Pin placed", zap.String("pin", p.ToString()))
}

func (ms *MapService) lookup(ctx context.Context, address string) (*geocoding.GeoPoint, error) {
	cached, err := ms.pinDao.GetCachedGeocode(address)
	if err != nil {
		ms.logger.Warn("Geocode cache read failed", zap.String("address", address), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	point, err := ms.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if err := ms.pinDao.SetCachedGeocode(address, *point); err != nil {
		ms.logger.Warn("Geocode cache write failed", zap.String("address", address), zap.Error(err))
	}
	return point, nil
}

// PurgeGeneration forgets the pins of a replaced data set.
func (ms *MapService) PurgeGeneration(generation uint64) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if generation+1 > ms.floor {
		ms.floor = generation + 1
	}
	if ms.selected != nil && ms.selected.Generation <= generation {
		ms.selected = nil
	}
	if err := ms.pinDao.DeleteGeneration(generation); err != nil {
		ms.logger.Warn("Failed to purge pins", zap.Uint64("generation", generation), zap.Error(err))
	}
}

// Select marks the pin of recordID as selected. It is a no-op returning
// false when the pin does not exist yet.
func (ms *MapService) Select(generation uint64, recordID int) bool {
	p, err := ms.pinDao.GetPin(generation, recordID)
	if err != nil {
		ms.logger.Warn("Failed to read pin", zap.Int("id", recordID), zap.Error(err))
		return false
	}
	if p == nil {
		return false
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if generation < ms.floor {
		return false
	}
	ms.selected = p
	return true
}

// Selected returns the selected pin, if any.
func (ms *MapService) Selected() (pin.Pin, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.selected == nil {
		return pin.Pin{}, false
	}
	return *ms.selected, true
}

// Pins returns the pins placed so far for generation.
func (ms *MapService) Pins(generation uint64) ([]pin.Pin, error) {
	return ms.pinDao.GetPins(generation)
}

// NearbyPins returns the pins of generation within radius km of (lat, lon).
func (ms *MapService) NearbyPins(generation uint64, lat, lon, radius float64) ([]pin.Pin, error) {
	return ms.pinDao.GetNearbyPins(generation, lat, lon, radius)
}
