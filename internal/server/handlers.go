package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/tradesim/scenariobuild/pkg/catalog"
	"github.com/tradesim/scenariobuild/pkg/compose"
	"github.com/tradesim/scenariobuild/pkg/gamedata"
	"github.com/tradesim/scenariobuild/pkg/migrate"
	"github.com/tradesim/scenariobuild/pkg/scenario"
	"github.com/tradesim/scenariobuild/pkg/storage"
	"github.com/tradesim/scenariobuild/pkg/validate"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"categories": catalog.Categories(),
		"targets":    catalog.Targets(),
		"tracks":     catalog.Tracks(),
	})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := s.DB.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(slots)
}

func slotParam(r *http.Request) (int, error) {
	return strconv.Atoi(r.URL.Query().Get("slot"))
}

func (s *Server) handleLoadScenario(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		http.Error(w, "bad slot parameter", http.StatusBadRequest)
		return
	}
	sc, err := s.DB.Load(r.Context(), slot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sc == nil {
		http.Error(w, "slot is empty", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(sc)
}

type saveResponse struct {
	Success  bool     `json:"success"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		http.Error(w, "bad slot parameter", http.StatusBadRequest)
		return
	}
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	warnings, err := s.DB.Save(r.Context(), slot, &sc)
	if err != nil {
		var verr *storage.ValidationError
		if errors.As(err, &verr) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(saveResponse{Success: false, Errors: verr.Errors, Warnings: warnings})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(saveResponse{Success: true, Warnings: warnings})
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		http.Error(w, "bad slot parameter", http.StatusBadRequest)
		return
	}
	if err := s.DB.Delete(r.Context(), slot); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ComposeRequest is the edit-preview payload: the editor posts the current
// baselines and event list after every edit and charts the response.
type ComposeRequest struct {
	Baseline map[string][]float64 `json:"baseline"`
	Events   []scenario.Event     `json:"events"`
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(compose.Effective(req.Baseline, req.Events))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(validate.Scenario(&sc))
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	events, err := migrate.Events(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(events)
}

func (s *Server) handleGameData(w http.ResponseWriter, r *http.Request) {
	slot, err := slotParam(r)
	if err != nil {
		http.Error(w, "bad slot parameter", http.StatusBadRequest)
		return
	}
	sc, err := s.DB.Load(r.Context(), slot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sc == nil {
		http.Error(w, "slot is empty", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(gamedata.Materialize(sc))
}
