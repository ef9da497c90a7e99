package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// MockDealHandler answers every route with the route name and its path vars.
type MockDealHandler struct{}

func reply(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		body := name
		for k, v := range mux.Vars(r) {
			body += " " + k + "=" + v
		}
		w.Write([]byte(body))
	}
}

func (h *MockDealHandler) GetDeals(w http.ResponseWriter, r *http.Request) { reply("deals")(w, r) }
func (h *MockDealHandler) GetFilter(w http.ResponseWriter, r *http.Request) { reply("filter")(w, r) }
func (h *MockDealHandler) ToggleWeekday(w http.ResponseWriter, r *http.Request) {
	reply("toggle")(w, r)
}
func (h *MockDealHandler) SelectAllDays(w http.ResponseWriter, r *http.Request) { reply("all")(w, r) }
func (h *MockDealHandler) SetHappeningNow(w http.ResponseWriter, r *http.Request) {
	reply("now")(w, r)
}
func (h *MockDealHandler) SelectRecord(w http.ResponseWriter, r *http.Request) {
	reply("record")(w, r)
}
func (h *MockDealHandler) ActivateGroup(w http.ResponseWriter, r *http.Request) {
	reply("group")(w, r)
}
func (h *MockDealHandler) GetPins(w http.ResponseWriter, r *http.Request) { reply("pins")(w, r) }
func (h *MockDealHandler) GetMap(w http.ResponseWriter, r *http.Request)  { reply("map")(w, r) }
func (h *MockDealHandler) Reload(w http.ResponseWriter, r *http.Request)  { reply("reload")(w, r) }
func (h *MockDealHandler) Ping(w http.ResponseWriter, r *http.Request)    { reply("pong")(w, r) }

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	router := mux.NewRouter()
	appRouter := NewRouter(&MockDealHandler{}, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{"Get Deals", "GET", "/v1/deals?verbose=true", http.StatusOK, "deals"},
		{"Get Filter", "GET", "/v1/filter", http.StatusOK, "filter"},
		{"Toggle Weekday", "POST", "/v1/filter/weekdays/mon", http.StatusOK, "toggle day=mon"},
		{"Select All Days", "POST", "/v1/filter/all", http.StatusOK, "all"},
		{"Happening Now", "POST", "/v1/filter/happening-now?on=false", http.StatusOK, "now"},
		{"Select Record", "POST", "/v1/select/records/3", http.StatusOK, "record id=3"},
		{"Select Record Non Numeric", "POST", "/v1/select/records/abc", http.StatusNotFound, ""},
		{"Activate Group", "POST", "/v1/select/groups/Midtown", http.StatusOK, "group key=Midtown"},
		{"Get Pins", "GET", "/v1/pins", http.StatusOK, "pins"},
		{"Get Map", "GET", "/v1/map", http.StatusOK, "map"},
		{"Reload", "POST", "/v1/reload", http.StatusOK, "reload"},
		{"Ping Route", "GET", "/ping", http.StatusOK, "pong"},
		{"Wrong Method", "GET", "/v1/reload", http.StatusMethodNotAllowed, ""},
		{"Invalid Route", "GET", "/invalid", http.StatusNotFound, ""},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
