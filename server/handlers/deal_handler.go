package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hh-server/api/sheets"
	"hh-server/filter"
	"hh-server/models/deal"
	"hh-server/models/pin"
	services "hh-server/service"
	"hh-server/util"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	VERBOSE_QUERY_ARG = "verbose"
	ON_QUERY_ARG      = "on"
	LAT_QUERY_ARG     = "lat"
	LON_QUERY_ARG     = "lon"
	RADIUS_QUERY_ARG  = "radius"

	DAY_PATH_VAR = "day"
	ID_PATH_VAR  = "id"
	KEY_PATH_VAR = "key"

	MAP_TITLE = "Happy Hour Deals"
)

// FilterView is the control-surface state returned after every filter change.
type FilterView struct {
	Mode              filter.Mode    `json:"mode"`
	ActiveWeekdays    []deal.Weekday `json:"active_weekdays"`
	DisplayedWeekdays []deal.Weekday `json:"displayed_weekdays"`
	HappeningNow      bool           `json:"happening_now"`
	Today             string         `json:"today"`
}

// GroupView is one visible group with only its visible members.
type GroupView struct {
	Key     string        `json:"key"`
	Records []interface{} `json:"records"`
}

// DealsView is the body of GET /v1/deals.
type DealsView struct {
	Generation uint64      `json:"generation"`
	LoadedAt   time.Time   `json:"loaded_at"`
	Filter     FilterView  `json:"filter"`
	Groups     []GroupView `json:"groups"`
}

// MinifiedDeal is the small form returned when verbose=false.
type MinifiedDeal struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Deal  string   `json:"deal"`
	Days  []string `json:"days"`
	Notes []string `json:"notes,omitempty"`
}

// PinView pairs a pin with the restaurant name.
type PinView struct {
	pin.Pin
	Name string `json:"name"`
}

type DealHandler struct {
	dealService *services.DealService
	mapService  *services.MapService
	logger      *zap.Logger
}

func NewDealHandler(dealService *services.DealService, mapService *services.MapService, logger *zap.Logger) *DealHandler {
	return &DealHandler{
		dealService: dealService,
		mapService:  mapService,
		logger:      logger.Named("DealHandler"),
	}
}

// groupsCollector is a RenderSink that keeps the visible part of each group.
type groupsCollector struct {
	verbose bool
	groups  []GroupView
}

func (c *groupsCollector) Render(groups []deal.Group, isVisible func(deal.Record) bool) error {
	c.groups = make([]GroupView, 0, len(groups))
	for _, g := range groups {
		view := GroupView{Key: g.Key}
		for _, r := range g.Members {
			if !isVisible(r) {
				continue
			}
			if c.verbose {
				view.Records = append(view.Records, r)
			} else {
				view.Records = append(view.Records, minify(r))
			}
		}
		if len(view.Records) > 0 {
			c.groups = append(c.groups, view)
		}
	}
	return nil
}

// GetDeals handles GET /v1/deals
func (h *DealHandler) GetDeals(w http.ResponseWriter, r *http.Request) {
	verbose := false
	if v := r.URL.Query().Get(VERBOSE_QUERY_ARG); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid argument "+VERBOSE_QUERY_ARG, http.StatusBadRequest)
			return
		}
		verbose = parsed
	}

	collector := &groupsCollector{verbose: verbose}
	snapshot, err := h.dealService.RenderSnapshot(collector)
	if err != nil {
		h.logger.Error("Error rendering deals", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, DealsView{
		Generation: snapshot.Generation,
		LoadedAt:   snapshot.LoadedAt,
		Filter:     h.filterView(),
		Groups:     collector.groups,
	})
}

// GetFilter handles GET /v1/filter
func (h *DealHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.filterView())
}

// ToggleWeekday handles POST /v1/filter/weekdays/{day}
func (h *DealHandler) ToggleWeekday(w http.ResponseWriter, r *http.Request) {
	day, err := deal.ParseWeekday(mux.Vars(r)[DAY_PATH_VAR])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.dealService.FilterState().ToggleWeekday(day, h.dealService.Today())
	h.writeJSON(w, http.StatusOK, h.filterView())
}

// SelectAllDays handles POST /v1/filter/all
func (h *DealHandler) SelectAllDays(w http.ResponseWriter, r *http.Request) {
	h.dealService.FilterState().SelectAll()
	h.writeJSON(w, http.StatusOK, h.filterView())
}

// SetHappeningNow handles POST /v1/filter/happening-now?on={bool}
func (h *DealHandler) SetHappeningNow(w http.ResponseWriter, r *http.Request) {
	on := true
	if v := r.URL.Query().Get(ON_QUERY_ARG); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid argument "+ON_QUERY_ARG, http.StatusBadRequest)
			return
		}
		on = parsed
	}
	h.dealService.FilterState().SetHappeningNow(on, h.dealService.Today())
	h.writeJSON(w, http.StatusOK, h.filterView())
}

// SelectRecord handles POST /v1/select/records/{id}
func (h *DealHandler) SelectRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)[ID_PATH_VAR])
	if err != nil {
		http.Error(w, "Invalid argument "+ID_PATH_VAR, http.StatusBadRequest)
		return
	}
	if _, ok := h.dealService.Record(id); !ok {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"selected": h.dealService.SelectRecord(id),
	})
}

// ActivateGroup handles POST /v1/select/groups/{key}
func (h *DealHandler) ActivateGroup(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)[KEY_PATH_VAR]
	members, ok := h.dealService.ActivateGroup(key)
	if !ok {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, deal.Group{Key: key, Members: members})
}

// GetPins handles GET /v1/pins
// optional ?lat={float}&lon={float}&radius={km} limits pins to a circle
func (h *DealHandler) GetPins(w http.ResponseWriter, r *http.Request) {
	area, ok := parseArea(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	markers, err := h.currentMarkers(area)
	if err != nil {
		h.logger.Error("Error loading pins", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	views := make([]PinView, 0, len(markers))
	for _, m := range markers {
		views = append(views, PinView{Pin: m.Pin, Name: m.Name})
	}
	h.writeJSON(w, http.StatusOK, views)
}

// GetMap handles GET /v1/map
func (h *DealHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	markers, err := h.currentMarkers(nil)
	if err != nil {
		h.logger.Error("Error loading pins", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var selected *util.PinMarker
	if p, ok := h.mapService.Selected(); ok {
		for i := range markers {
			if markers[i].Pin.Generation == p.Generation && markers[i].Pin.RecordID == p.RecordID {
				selected = &markers[i]
				break
			}
		}
	}

	var page bytes.Buffer
	if err := util.RenderPinsMap(&page, MAP_TITLE, markers, selected); err != nil {
		h.logger.Error("Error rendering map", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.Bytes()); err != nil {
		h.logger.Warn("Error writing map", zap.Error(err))
	}
}

// Reload handles POST /v1/reload
func (h *DealHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.dealService.Reload(r.Context()); err != nil {
		var loadErr *sheets.LoadError
		if errors.As(err, &loadErr) {
			http.Error(w, loadErr.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	snapshot := h.dealService.Snapshot()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"generation": snapshot.Generation,
		"records":    len(snapshot.Records),
		"groups":     len(snapshot.Groups),
	})
}

// Ping handles GET /ping
func (h *DealHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// searchArea is a circle of radius km around (lat, lon).
type searchArea struct {
	lat, lon, radius float64
}

// parseArea reads the optional circle; either all three args are given or none.
func parseArea(vals url.Values, w http.ResponseWriter) (*searchArea, bool) {
	if vals.Get(LAT_QUERY_ARG) == "" && vals.Get(LON_QUERY_ARG) == "" && vals.Get(RADIUS_QUERY_ARG) == "" {
		return nil, true
	}

	var area searchArea
	var err error
	if area.lat, err = strconv.ParseFloat(vals.Get(LAT_QUERY_ARG), 64); err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return nil, false
	}
	if area.lon, err = strconv.ParseFloat(vals.Get(LON_QUERY_ARG), 64); err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return nil, false
	}
	if area.radius, err = strconv.ParseFloat(vals.Get(RADIUS_QUERY_ARG), 64); err != nil || area.radius <= 0 {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return nil, false
	}
	return &area, true
}

// currentMarkers returns the pins of the live generation for visible records,
// limited to area when it is set.
func (h *DealHandler) currentMarkers(area *searchArea) ([]util.PinMarker, error) {
	snapshot := h.dealService.Snapshot()
	if snapshot.Generation == 0 {
		return []util.PinMarker{}, nil
	}
	var pins []pin.Pin
	var err error
	if area != nil {
		pins, err = h.mapService.NearbyPins(snapshot.Generation, area.lat, area.lon, area.radius)
	} else {
		pins, err = h.mapService.Pins(snapshot.Generation)
	}
	if err != nil {
		return nil, err
	}

	isVisible := h.dealService.VisibilityPredicate()
	markers := make([]util.PinMarker, 0, len(pins))
	for _, p := range pins {
		if p.RecordID < 0 || p.RecordID >= len(snapshot.Records) {
			continue
		}
		record := snapshot.Records[p.RecordID]
		if !isVisible(record) {
			continue
		}
		markers = append(markers, util.PinMarker{Name: record.Name, Pin: p})
	}
	return markers, nil
}

func (h *DealHandler) filterView() FilterView {
	snapshot := h.dealService.FilterState().Snapshot()
	today := h.dealService.Today()
	return FilterView{
		Mode:              snapshot.Mode(),
		ActiveWeekdays:    snapshot.ActiveWeekdays,
		DisplayedWeekdays: filter.DisplayedWeekdays(snapshot, today),
		HappeningNow:      snapshot.HappeningNow,
		Today:             today.String(),
	}
}

func (h *DealHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("Error encoding response", zap.Error(err))
	}
}

// minify keeps the "yes" days as codes and free-text day cells as notes.
func minify(r deal.Record) MinifiedDeal {
	m := MinifiedDeal{ID: r.ID, Name: r.Name, Deal: r.OverallDeal, Days: []string{}}
	for _, d := range deal.Weekdays {
		switch {
		case r.IsYes(d):
			m.Days = append(m.Days, string(d))
		case r.HasDeal(d):
			m.Notes = append(m.Notes, string(d)+": "+r.Day(d))
		}
	}
	return m
}
