// Package api exposes the damage calculator, the monster table and loadout
// persistence as a JSON HTTP service routed with gorilla/mux.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/config"
	"github.com/cory-johannsen/damagecalc/internal/game/dice"
	"github.com/cory-johannsen/damagecalc/internal/game/intake"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
	"github.com/cory-johannsen/damagecalc/internal/storage"
)

// Deps are the collaborators a Handler serves requests from.
type Deps struct {
	Monsters   *monster.Database
	Store      storage.Store
	Intake     intake.Provider
	Simulation config.SimulationConfig
	// MaxBodyBytes caps every request body.
	MaxBodyBytes int64
	Logger       *zap.Logger
}

// Handler serves the HTTP API.
type Handler struct {
	monsters   *monster.Database
	store      storage.Store
	intake     intake.Provider
	simulation config.SimulationConfig
	maxBody    int64
	logger     *zap.Logger
	// newSource builds the randomness for one simulation request.
	newSource func(seed uint64, seeded bool) dice.Source
}

// NewHandler creates a Handler.
//
// Precondition: deps.Monsters, deps.Store, deps.Intake and deps.Logger must be non-nil;
// deps.MaxBodyBytes must be positive.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		monsters:   deps.Monsters,
		store:      deps.Store,
		intake:     deps.Intake,
		simulation: deps.Simulation,
		maxBody:    deps.MaxBodyBytes,
		logger:     deps.Logger,
		newSource:  defaultSource,
	}
}

func defaultSource(seed uint64, seeded bool) dice.Source {
	if seeded {
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}

// Router returns the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests, h.limitBody)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api.HandleFunc("/monsters", h.listMonsters).Methods(http.MethodGet)
	api.HandleFunc("/monsters/{id}", h.getMonster).Methods(http.MethodGet)

	api.HandleFunc("/damage", h.resolveDamage).Methods(http.MethodPost)
	api.HandleFunc("/simulate", h.simulate).Methods(http.MethodPost)
	api.HandleFunc("/intake", h.detectLoadout).Methods(http.MethodPost)

	api.HandleFunc("/loadouts", h.createLoadout).Methods(http.MethodPost)
	api.HandleFunc("/loadouts", h.clearLoadouts).Methods(http.MethodDelete)
	api.HandleFunc("/loadouts/{key}", h.putLoadout).Methods(http.MethodPut)
	api.HandleFunc("/loadouts/{key}", h.getLoadout).Methods(http.MethodGet)
	api.HandleFunc("/loadouts/{key}", h.deleteLoadout).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "no such route")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (h *Handler) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
		next.ServeHTTP(w, r)
	})
}
