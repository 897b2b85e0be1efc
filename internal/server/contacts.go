package server

import (
	"net/http"

	"uprala/internal/utils"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleListContacts(w http.ResponseWriter, r *http.Request) {
	villageID := r.PathValue("id")

	var filter = new(types.ContactFilter)
	if err := decodeQuery(r, filter); err != nil {
		s.writeError(w, r, err)
		return
	}
	if filter.Role != "" && !filter.Role.Valid() {
		s.writeError(w, r, types.NewValidationError("invalid query parameters", map[string]string{
			"role": "must be one of: PATWARI, SARPANCH, NUMBERDAR, OTHER",
		}))
		return
	}

	exists, err := s.villages.VillageExists(r.Context(), villageID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !exists {
		s.writeError(w, r, types.ErrVillageNotFound)
		return
	}

	contacts, err := s.contacts.ContactsByVillage(r.Context(), villageID, filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, contacts)
}

func (s *Service) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var input = new(types.CreateContactInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	contact := &types.Contact{
		VillageID: r.PathValue("id"),
		Name:      utils.NormalizeSpace(input.Name),
		Phone:     utils.TrimPtr(input.Phone),
		Role:      input.Role,
	}

	if err := s.contacts.CreateContact(r.Context(), contact); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"village_id": contact.VillageID,
	}).Info("contact created")

	s.writeJSON(w, http.StatusCreated, contact)
}

func (s *Service) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var patch = new(types.ContactPatch)
	if err := decodeJSON(w, r, patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	contact, err := s.contacts.UpdateContact(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, contact)
}

func (s *Service) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
