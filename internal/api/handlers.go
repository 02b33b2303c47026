package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cory-johannsen/damagecalc/internal/game/damage"
	"github.com/cory-johannsen/damagecalc/internal/game/equipment"
	"github.com/cory-johannsen/damagecalc/internal/game/intake"
	"github.com/cory-johannsen/damagecalc/internal/game/monster"
	"github.com/cory-johannsen/damagecalc/internal/storage"
)

// DamageRequest names a target either by reference id or inline, plus the loadout.
type DamageRequest struct {
	MonsterID string           `json:"monster_id,omitempty"`
	Monster   *monster.Monster `json:"monster,omitempty"`
	Equipment equipment.Set    `json:"equipment"`
}

// SimulateRequest extends DamageRequest with a hit count and optional seed.
// A nil Hits uses the configured default.
type SimulateRequest struct {
	DamageRequest
	Hits *int    `json:"hits,omitempty"`
	Seed *uint64 `json:"seed,omitempty"`
}

// LoadoutCreated is returned when the server assigns a loadout key.
type LoadoutCreated struct {
	Key string `json:"key"`
}

// target resolves the monster a request refers to.
func (h *Handler) target(req DamageRequest) (monster.Monster, error) {
	switch {
	case req.Monster != nil && req.MonsterID != "":
		return monster.Monster{}, fmt.Errorf("%w: give monster_id or monster, not both", errBadRequest)
	case req.Monster != nil:
		return *req.Monster, nil
	case req.MonsterID != "":
		m, ok := h.monsters.FindByID(req.MonsterID)
		if !ok {
			return monster.Monster{}, fmt.Errorf("monster %q: %w", req.MonsterID, storage.ErrNotFound)
		}
		return m, nil
	default:
		return monster.Monster{}, fmt.Errorf("%w: monster_id or monster is required", errBadRequest)
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listMonsters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.monsters.All())
}

func (h *Handler) getMonster(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	m, ok := h.monsters.FindByID(id)
	if !ok {
		h.fail(w, r, fmt.Errorf("monster %q: %w", id, storage.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) resolveDamage(w http.ResponseWriter, r *http.Request) {
	var req DamageRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	mon, err := h.target(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Equipment.Validate(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	intake.WarnMismatches(h.logger, req.Equipment)

	res, err := damage.Resolve(req.Equipment, mon)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	mon, err := h.target(req.DamageRequest)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Equipment.Validate(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	hits := h.simulation.DefaultHits
	if req.Hits != nil {
		hits = *req.Hits
	}
	if hits > h.simulation.MaxHits {
		h.fail(w, r, fmt.Errorf("%w: hits %d exceeds limit %d", errBadRequest, hits, h.simulation.MaxHits))
		return
	}

	seed, seeded := h.simulation.Seed, h.simulation.Seed != 0
	if req.Seed != nil {
		seed, seeded = *req.Seed, true
	}
	calc := damage.NewCalculator(h.newSource(seed, seeded), h.logger)
	sim, err := calc.Simulate(req.Equipment, mon, hits)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func (h *Handler) detectLoadout(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	set, err := h.intake.Detect(r.Context(), image)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	intake.WarnMismatches(h.logger, set)
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) readLoadout(r *http.Request) (equipment.Set, error) {
	var set equipment.Set
	if err := decode(r, &set); err != nil {
		return equipment.Set{}, err
	}
	if err := set.Validate(); err != nil {
		return equipment.Set{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return set, nil
}

func (h *Handler) createLoadout(w http.ResponseWriter, r *http.Request) {
	set, err := h.readLoadout(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	key := uuid.NewString()
	if err := storage.PutJSON(r.Context(), h.store, key, set); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("loadout stored", zap.String("key", key))
	writeJSON(w, http.StatusCreated, LoadoutCreated{Key: key})
}

func (h *Handler) putLoadout(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	set, err := h.readLoadout(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := storage.PutJSON(r.Context(), h.store, key, set); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getLoadout(w http.ResponseWriter, r *http.Request) {
	set, err := storage.GetJSON[equipment.Set](r.Context(), h.store, mux.Vars(r)["key"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) deleteLoadout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), mux.Vars(r)["key"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearLoadouts(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("loadouts cleared")
	w.WriteHeader(http.StatusNoContent)
}
