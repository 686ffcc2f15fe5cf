package http

import (
	"context"
	"net/http"
	"time"

	"equipment-tracker/internal/config"
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/service"

	"github.com/gorilla/mux"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Equipment service.EquipmentService
	Rentals   service.RentalEntryService
	Broker    *SSEBroker
	Metrics   *metrics.Metrics
	DB        Pinger
	Board     config.BoardConfig
	Server    config.ServerConfig
}

// Handler serves the REST surface of the tracker.
type Handler struct {
	equipment service.EquipmentService
	rentals   service.RentalEntryService
	broker    *SSEBroker
	metrics   *metrics.Metrics
	db        Pinger
	board     config.BoardConfig
	server    config.ServerConfig
	now       func() time.Time
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		equipment: deps.Equipment,
		rentals:   deps.Rentals,
		broker:    deps.Broker,
		metrics:   deps.Metrics,
		db:        deps.DB,
		board:     deps.Board,
		server:    deps.Server,
		now:       time.Now,
	}
}

// Routes builds the router with all middleware applied.
func (h *Handler) Routes() http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFoundResponse)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedResponse)
	router.Use(requestID, h.observe)

	router.HandleFunc("/equipment", h.listEquipment).Methods(http.MethodGet)
	router.HandleFunc("/equipment", h.createEquipment).Methods(http.MethodPost)
	router.HandleFunc("/equipment", h.updateEquipment).Methods(http.MethodPut)
	router.HandleFunc("/equipment", h.deleteEquipment).Methods(http.MethodDelete)
	router.HandleFunc("/equipment/board", h.showBoard).Methods(http.MethodGet)
	router.HandleFunc("/equipment/stream", h.streamEquipment).Methods(http.MethodGet)
	router.HandleFunc("/equipment/export.xlsx", h.exportEquipment).Methods(http.MethodGet)
	router.HandleFunc("/equipment/{id:[0-9]+}/actions", h.listActions).Methods(http.MethodGet)
	router.HandleFunc("/equipment/{id:[0-9]+}/actions", h.applyAction).Methods(http.MethodPost)

	router.HandleFunc("/rentals", h.listRentals).Methods(http.MethodGet)
	router.HandleFunc("/rentals/export.pdf", h.exportRentals).Methods(http.MethodGet)

	router.HandleFunc("/timeline", h.showTimeline).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	if h.metrics != nil {
		router.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}

	var handler http.Handler = router
	if h.server.RateLimitPerSecond > 0 {
		handler = newIPRateLimiter(h.server.RateLimitPerSecond, h.server.RateLimitBurst).middleware(handler)
	}
	return recoverPanic(handler)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logError(r, err)
			errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if err := writeJSON(w, http.StatusOK, envelope{"status": "ok"}); err != nil {
		logError(r, err)
	}
}
