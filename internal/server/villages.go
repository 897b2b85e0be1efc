package server

import (
	"net/http"

	"uprala/internal/utils"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.requestLogger(r).WithError(err).Error("database ping failed")
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Service) handleListVillages(w http.ResponseWriter, r *http.Request) {
	var filter = new(types.VillageFilter)
	if err := decodeQuery(r, filter); err != nil {
		s.writeError(w, r, err)
		return
	}

	villages, err := s.villages.Villages(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, villages)
}

func (s *Service) handleGetVillage(w http.ResponseWriter, r *http.Request) {
	village, err := s.villages.Village(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, village)
}

func (s *Service) handleCreateVillage(w http.ResponseWriter, r *http.Request) {
	var input = new(types.CreateVillageInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	name := utils.NormalizeSpace(input.Name)
	if name == "" {
		s.writeError(w, r, types.NewValidationError("missing or invalid fields", map[string]string{"name": "is required"}))
		return
	}

	village := &types.Village{
		Name:         name,
		District:     utils.TrimPtr(input.District),
		Description:  utils.TrimPtr(input.Description),
		MostEffected: input.MostEffected,
		NeedsHelp:    input.NeedsHelp,
	}

	if err := s.villages.CreateVillage(r.Context(), village); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithFields(logrus.Fields{
		"village_id": village.ID,
		"name":       village.Name,
	}).Info("village created")

	s.writeJSON(w, http.StatusCreated, village)
}

func (s *Service) handleUpdateVillage(w http.ResponseWriter, r *http.Request) {
	var patch = new(types.VillagePatch)
	if err := decodeJSON(w, r, patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	if patch.Name != nil {
		name := utils.NormalizeSpace(*patch.Name)
		if name == "" {
			s.writeError(w, r, types.NewValidationError("missing or invalid fields", map[string]string{"name": "must not be blank"}))
			return
		}
		patch.Name = &name
	}

	village, err := s.villages.UpdateVillage(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, village)
}

func (s *Service) handleDeleteVillage(w http.ResponseWriter, r *http.Request) {
	villageID := r.PathValue("id")

	if err := s.villages.DeleteVillage(r.Context(), villageID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithField("village_id", villageID).Info("village deleted")

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleMarkVillages(w http.ResponseWriter, r *http.Request) {
	var input = new(types.MarkVillagesInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.villages.MarkVillages(r.Context(), input.Flag, input.Names)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithFields(logrus.Fields{
		"flag":        input.Flag,
		"updated":     result.Updated,
		"not_matched": len(result.NotMatched),
	}).Info("villages marked")

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleVillageAssignments(w http.ResponseWriter, r *http.Request) {
	villageID := r.PathValue("id")

	exists, err := s.villages.VillageExists(r.Context(), villageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !exists {
		s.writeError(w, r, types.ErrVillageNotFound)
		return
	}

	assignments, err := s.assignments.AssignmentsByVillage(r.Context(), villageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, assignments)
}

func (s *Service) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.assignments.Assignments(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, assignments)
}
