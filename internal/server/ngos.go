package server

import (
	"net/http"

	"uprala/internal/utils"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleListNGOs(w http.ResponseWriter, r *http.Request) {
	var filter = new(types.NGOFilter)
	if err := decodeQuery(r, filter); err != nil {
		s.writeError(w, r, err)
		return
	}

	ngos, err := s.ngos.NGOs(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ngos)
}

func (s *Service) handleGetNGO(w http.ResponseWriter, r *http.Request) {
	ngo, err := s.ngos.NGO(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ngo)
}

func (s *Service) handleCreateNGO(w http.ResponseWriter, r *http.Request) {
	var input = new(types.CreateNGOInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	name := utils.NormalizeSpace(input.Name)
	if name == "" {
		s.writeError(w, r, types.NewValidationError("missing or invalid fields", map[string]string{"name": "is required"}))
		return
	}

	ngo := &types.NGO{Name: name, Type: utils.TrimPtr(input.Type)}
	if err := s.ngos.CreateNGO(r.Context(), ngo); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithFields(logrus.Fields{
		"ngo_id": ngo.ID,
		"name":   ngo.Name,
	}).Info("ngo created")

	s.writeJSON(w, http.StatusCreated, ngo)
}

func (s *Service) handleUpdateNGO(w http.ResponseWriter, r *http.Request) {
	var patch = new(types.NGOPatch)
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

	ngo, err := s.ngos.UpdateNGO(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ngo)
}

func (s *Service) handleDeleteNGO(w http.ResponseWriter, r *http.Request) {
	ngoID := r.PathValue("id")

	if err := s.ngos.DeleteNGO(r.Context(), ngoID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithField("ngo_id", ngoID).Info("ngo deleted")

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleListSupportTypes(w http.ResponseWriter, r *http.Request) {
	supportTypes, err := s.lookups.SupportTypes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, supportTypes)
}

func (s *Service) handleListScales(w http.ResponseWriter, r *http.Request) {
	scales, err := s.lookups.Scales(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, scales)
}
