package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DealRoutes is the set of handlers the router exposes.
type DealRoutes interface {
	GetDeals(w http.ResponseWriter, r *http.Request)
	GetFilter(w http.ResponseWriter, r *http.Request)
	ToggleWeekday(w http.ResponseWriter, r *http.Request)
	SelectAllDays(w http.ResponseWriter, r *http.Request)
	SetHappeningNow(w http.ResponseWriter, r *http.Request)
	SelectRecord(w http.ResponseWriter, r *http.Request)
	ActivateGroup(w http.ResponseWriter, r *http.Request)
	GetPins(w http.ResponseWriter, r *http.Request)
	GetMap(w http.ResponseWriter, r *http.Request)
	Reload(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dealHandler DealRoutes
	router      *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	dealHandler DealRoutes,
	router *mux.Router) *Router {
	return &Router{
		dealHandler: dealHandler,
		router:      router,
	}
}

func (r *Router) RegisterRoutes() {
	// optional ?verbose={bool}
	r.router.HandleFunc("/v1/deals", r.dealHandler.GetDeals).Methods("GET")

	r.router.HandleFunc("/v1/filter", r.dealHandler.GetFilter).Methods("GET")
	r.router.HandleFunc("/v1/filter/weekdays/{day}", r.dealHandler.ToggleWeekday).Methods("POST")
	r.router.HandleFunc("/v1/filter/all", r.dealHandler.SelectAllDays).Methods("POST")
	// optional ?on={bool}, defaults to true
	r.router.HandleFunc("/v1/filter/happening-now", r.dealHandler.SetHappeningNow).Methods("POST")

	r.router.HandleFunc("/v1/select/records/{id:[0-9]+}", r.dealHandler.SelectRecord).Methods("POST")
	r.router.HandleFunc("/v1/select/groups/{key}", r.dealHandler.ActivateGroup).Methods("POST")

	// optional ?lat={float}&lon={float}&radius={km}
	r.router.HandleFunc("/v1/pins", r.dealHandler.GetPins).Methods("GET")
	r.router.HandleFunc("/v1/map", r.dealHandler.GetMap).Methods("GET")
	r.router.HandleFunc("/v1/reload", r.dealHandler.Reload).Methods("POST")

	r.router.HandleFunc("/ping", r.dealHandler.Ping).Methods("GET")
}
