package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hh-server/api/sheets"
	"hh-server/filter"
	"hh-server/models/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 2026-10-21 is a Wednesday.
var wednesdayNoon = time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	mu    sync.Mutex
	rows  []deal.RawRow
	err   error
	calls int
}

func (s *stubSource) Load(ctx context.Context, url string) ([]deal.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, &sheets.LoadError{URL: url, Cause: s.err}
	}
	return s.rows, nil
}

func (s *stubSource) set(rows []deal.RawRow, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows, s.err = rows, err
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type pinRequest struct {
	generation uint64
	id         int
	address    string
}

type recordingMapSink struct {
	mu       sync.Mutex
	requests []pinRequest
	selected []int
	purged   []uint64
}

func (m *recordingMapSink) RequestPin(generation uint64, recordID int, address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, pinRequest{generation, recordID, address})
}

func (m *recordingMapSink) Select(generation uint64, recordID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = append(m.selected, recordID)
	return true
}

func (m *recordingMapSink) PurgeGeneration(generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged = append(m.purged, generation)
}

type recordingRenderSink struct {
	visible map[string][]string
	hidden  []string
}

func (r *recordingRenderSink) Render(groups []deal.Group, isVisible func(deal.Record) bool) error {
	r.visible = map[string][]string{}
	r.hidden = nil
	for _, g := range groups {
		if !filter.GroupVisible(g, isVisible) {
			r.hidden = append(r.hidden, g.Key)
			continue
		}
		for _, m := range g.Members {
			if isVisible(m) {
				r.visible[g.Key] = append(r.visible[g.Key], m.Name)
			}
		}
	}
	return nil
}

func scenarioRows() []deal.RawRow {
	return []deal.RawRow{
		{"Neighborhood": "Midtown", "RestaurantName": "A", "Mon": "yes", "MapsURL": "https://maps.google.com/?q=1+Peachtree+St"},
		{"Neighborhood": "Buckhead", "RestaurantName": "B", "Tue": "yes", "MapsURL": "https://maps.google.com/?q=2+Piedmont+Rd"},
		{"Neighborhood": "Midtown", "RestaurantName": "C", "Mon": "yes", "Fri": "yes"},
	}
}

func newTestDealService(source sheets.RecordSource, clock func() time.Time) *DealService {
	return NewDealService(source, "https://sheet.example/pub?output=csv", filter.NewState(true), time.UTC, clock, zap.NewNop())
}

func TestDealService_EndToEnd(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, func() time.Time { return wednesdayNoon })

	require.NoError(t, svc.Reload(context.Background()))

	snapshot := svc.Snapshot()
	require.Len(t, snapshot.Groups, 2)
	assert.Equal(t, "Buckhead", snapshot.Groups[0].Key)
	assert.Equal(t, "Midtown", snapshot.Groups[1].Key)

	sink := &recordingRenderSink{}
	require.NoError(t, svc.Render(sink))
	assert.Equal(t, map[string][]string{"Buckhead": {"B"}, "Midtown": {"A", "C"}}, sink.visible)

	svc.FilterState().ToggleWeekday(deal.Monday, svc.Today())
	require.NoError(t, svc.Render(sink))
	assert.Equal(t, map[string][]string{"Midtown": {"A", "C"}}, sink.visible)
	assert.Equal(t, []string{"Buckhead"}, sink.hidden)
}

func TestDealService_ReloadFailureKeepsPreviousData(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, nil)
	require.NoError(t, svc.Reload(context.Background()))
	before := svc.Snapshot()

	source.set(nil, errors.New("connection refused"))
	err := svc.Reload(context.Background())

	var loadErr *sheets.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, before, svc.Snapshot())
}

func TestDealService_FirstLoadFailureLeavesDisplayEmpty(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	svc := newTestDealService(source, nil)

	assert.Error(t, svc.Reload(context.Background()))
	assert.Empty(t, svc.Snapshot().Groups)
	assert.Equal(t, uint64(0), svc.Snapshot().Generation)
}

func TestDealService_ReloadReassignsIDsAndGeneration(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, nil)
	require.NoError(t, svc.Reload(context.Background()))
	first := svc.Snapshot().Generation

	source.set([]deal.RawRow{{"Neighborhood": "Decatur", "RestaurantName": "D"}}, nil)
	require.NoError(t, svc.Reload(context.Background()))
	second := svc.Snapshot()

	assert.Equal(t, first+1, second.Generation)
	require.Len(t, second.Records, 1)
	assert.Equal(t, 0, second.Records[0].ID)
	assert.True(t, svc.IsCurrent(second.Generation, 0))
	assert.False(t, svc.IsCurrent(first, 0))
	assert.False(t, svc.IsCurrent(second.Generation, 1))
	assert.False(t, svc.IsCurrent(0, 0))
}

func TestDealService_RequestsPinsForAddressableRecords(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, nil)
	sink := &recordingMapSink{}
	svc.AttachMapSink(sink)

	require.NoError(t, svc.Reload(context.Background()))
	require.NoError(t, svc.Reload(context.Background()))

	// sorted: B(0), A(1), C(2); C has no maps link
	assert.Equal(t, []pinRequest{
		{1, 0, "2 Piedmont Rd"},
		{1, 1, "1 Peachtree St"},
		{2, 0, "2 Piedmont Rd"},
		{2, 1, "1 Peachtree St"},
	}, sink.requests)
	assert.Equal(t, []uint64{1}, sink.purged)
}

func TestDealService_SelectRecord(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, nil)
	sink := &recordingMapSink{}

	assert.False(t, svc.SelectRecord(0), "no sink attached")

	svc.AttachMapSink(sink)
	require.NoError(t, svc.Reload(context.Background()))

	assert.True(t, svc.SelectRecord(2))
	assert.False(t, svc.SelectRecord(3))
	assert.False(t, svc.SelectRecord(-1))
	assert.Equal(t, []int{2}, sink.selected)
}

func TestDealService_ActivateGroup(t *testing.T) {
	svc := newTestDealService(&stubSource{rows: scenarioRows()}, nil)
	require.NoError(t, svc.Reload(context.Background()))

	members, ok := svc.ActivateGroup("Midtown")
	require.True(t, ok)
	assert.Len(t, members, 2)

	_, ok = svc.ActivateGroup("Nowhere")
	assert.False(t, ok)
}

func TestDealService_TodayUsesLocation(t *testing.T) {
	// Wednesday 02:00 UTC is still Tuesday five hours west.
	clock := func() time.Time { return time.Date(2026, 10, 21, 2, 0, 0, 0, time.UTC) }
	svc := NewDealService(&stubSource{}, "", filter.NewState(true), time.FixedZone("UTC-5", -5*3600), clock, zap.NewNop())

	assert.Equal(t, time.Tuesday, svc.Today())
}

func TestDealService_HappeningNowUsesToday(t *testing.T) {
	svc := newTestDealService(&stubSource{rows: []deal.RawRow{
		{"RestaurantName": "wed", "Wed": "yes"},
		{"RestaurantName": "mon", "Mon": "yes"},
	}}, func() time.Time { return wednesdayNoon })
	require.NoError(t, svc.Reload(context.Background()))

	svc.FilterState().SetHappeningNow(true, svc.Today())
	isVisible := svc.VisibilityPredicate()

	records := svc.Snapshot().Records
	assert.True(t, isVisible(records[0]))
	assert.False(t, isVisible(records[1]))
}

// reloadingRenderSink swaps the data set while a render is in progress.
type reloadingRenderSink struct {
	svc  *DealService
	keys []string
}

func (r *reloadingRenderSink) Render(groups []deal.Group, isVisible func(deal.Record) bool) error {
	for _, g := range groups {
		r.keys = append(r.keys, g.Key)
	}
	return r.svc.Reload(context.Background())
}

func TestDealService_RenderSnapshotMatchesRenderedGroups(t *testing.T) {
	source := &stubSource{rows: scenarioRows()}
	svc := newTestDealService(source, nil)
	require.NoError(t, svc.Reload(context.Background()))
	source.set([]deal.RawRow{{"Neighborhood": "Decatur", "RestaurantName": "D"}}, nil)

	sink := &reloadingRenderSink{svc: svc}
	rendered, err := svc.RenderSnapshot(sink)

	require.NoError(t, err)
	assert.Equal(t, uint64(1), rendered.Generation)
	assert.Equal(t, []string{"Buckhead", "Midtown"}, sink.keys)
	require.Len(t, rendered.Groups, 2)
	assert.Equal(t, uint64(2), svc.Snapshot().Generation)
}
