package services

import (
	"context"
	"sync"
	"time"

	"hh-server/api/sheets"
	"hh-server/filter"
	"hh-server/models/deal"
	"hh-server/util"

	"go.uber.org/zap"
)

// Snapshot is one loaded data set. Ids are only meaningful together with
// the generation they were assigned in.
type Snapshot struct {
	Generation uint64        `json:"generation"`
	Records    []deal.Record `json:"records"`
	Groups     []deal.Group  `json:"groups"`
	LoadedAt   time.Time     `json:"loaded_at"`
}

// DealService loads the deals sheet and owns the current data set and filter.
type DealService struct {
	source   sheets.RecordSource
	sheetURL string
	state    *filter.State
	mapSink  MapSink
	clock    func() time.Time
	location *time.Location
	logger   *zap.Logger

	mu         sync.RWMutex
	snapshot   Snapshot
	generation uint64
}

// NewDealService constructs a DealService. A nil clock means time.Now.
func NewDealService(
	source sheets.RecordSource,
	sheetURL string,
	state *filter.State,
	location *time.Location,
	clock func() time.Time,
	logger *zap.Logger,
) *DealService {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &DealService{
		source:   source,
		sheetURL: sheetURL,
		state:    state,
		clock:    clock,
		location: location,
		logger:   logger.Named("DealService"),
	}
}

// AttachMapSink sets the sink that receives pin requests on every reload.
func (s *DealService) AttachMapSink(sink MapSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapSink = sink
}

// Reload fetches the sheet and replaces the data set. On failure the previous
// data set stays in place and the *sheets.LoadError is returned.
func (s *DealService) Reload(ctx context.Context) error {
	s.logger.Info("Loading deals", zap.String("url", s.sheetURL))
	rows, err := s.source.Load(ctx, s.sheetURL)
	if err != nil {
		s.logger.Error("Failed to load deals, keeping previous data", zap.Error(err))
		return err
	}

	records := util.NormalizeDeals(rows)
	groups := util.GroupDeals(records)

	s.mu.Lock()
	previous := s.snapshot.Generation
	s.generation++
	generation := s.generation
	s.snapshot = Snapshot{
		Generation: generation,
		Records:    records,
		Groups:     groups,
		LoadedAt:   s.clock(),
	}
	sink := s.mapSink
	s.mu.Unlock()

	s.logger.Info("Deals loaded",
		zap.Uint64("generation", generation),
		zap.Int("records", len(records)),
		zap.Int("groups", len(groups)))

	if sink == nil {
		return nil
	}
	if purger, ok := sink.(generationPurger); ok && previous != 0 {
		purger.PurgeGeneration(previous)
	}
	for _, r := range records {
		address, ok := util.ExtractAddress(r.MapsURL)
		if !ok {
			s.logger.Debug("No address for record, skipping pin", zap.String("record", r.ToString()))
			continue
		}
		sink.RequestPin(generation, r.ID, address)
	}
	return nil
}

// Snapshot returns the current data set.
func (s *DealService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// IsCurrent reports whether recordID exists in the data set of generation.
func (s *DealService) IsCurrent(generation uint64, recordID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return generation != 0 &&
		generation == s.snapshot.Generation &&
		recordID >= 0 && recordID < len(s.snapshot.Records)
}

// Record looks a record up by id in the current data set.
func (s *DealService) Record(recordID int) (deal.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if recordID < 0 || recordID >= len(s.snapshot.Records) {
		return deal.Record{}, false
	}
	return s.snapshot.Records[recordID], true
}

// FilterState exposes the process-wide filter.
func (s *DealService) FilterState() *filter.State {
	return s.state
}

// Today is the current weekday in the configured timezone.
func (s *DealService) Today() time.Weekday {
	return s.clock().In(s.location).Weekday()
}

// VisibilityPredicate binds the current filter and weekday.
func (s *DealService) VisibilityPredicate() func(deal.Record) bool {
	return filter.Predicate(s.state.Snapshot(), s.Today())
}

// Render hands the current groups to sink with the current filter applied.
func (s *DealService) Render(sink RenderSink) error {
	_, err := s.RenderSnapshot(sink)
	return err
}

// RenderSnapshot is Render that also returns the data set it rendered.
func (s *DealService) RenderSnapshot(sink RenderSink) (Snapshot, error) {
	snapshot := s.Snapshot()
	return snapshot, sink.Render(snapshot.Groups, s.VisibilityPredicate())
}

// SelectRecord forwards a record selection to the map sink. Unknown ids and
// records without a pin yet are ignored.
func (s *DealService) SelectRecord(recordID int) bool {
	s.mu.RLock()
	generation := s.snapshot.Generation
	sink := s.mapSink
	s.mu.RUnlock()

	if sink == nil || !s.IsCurrent(generation, recordID) {
		return false
	}
	return sink.Select(generation, recordID)
}

// ActivateGroup returns the members of the group with key.
func (s *DealService) ActivateGroup(key string) ([]deal.Record, bool) {
	snapshot := s.Snapshot()
	for _, g := range snapshot.Groups {
		if g.Key == key {
			return g.Members, true
		}
	}
	return nil, false
}
