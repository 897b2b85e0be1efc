package server

import (
	"net/http"

	"uprala/pkg/types"
)

type approvalResponse struct {
	ID           string              `json:"id"`
	Status       types.RequestStatus `json:"status"`
	AssignmentID string              `json:"assignmentId"`
	Assignment   *types.Assignment   `json:"assignment"`
}

func (s *Service) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var input = new(types.CreateRequestInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	request, err := s.adoption.CreateRequest(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.requestTransitions.WithLabelValues(string(request.Status)).Inc()

	s.writeJSON(w, http.StatusCreated, request)
}

func (s *Service) handleListRequests(w http.ResponseWriter, r *http.Request) {
	var filter = new(types.RequestFilter)
	if err := decodeQuery(r, filter); err != nil {
		s.writeError(w, r, err)
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		s.writeError(w, r, types.NewValidationError("invalid query parameters", map[string]string{
			"status": "must be one of: PENDING, APPROVED, REJECTED",
		}))
		return
	}

	requests, err := s.requests.Requests(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Service) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := s.requests.RequestDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, request)
}

func (s *Service) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	result, err := s.adoption.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.requestTransitions.WithLabelValues(string(types.RequestStatusApproved)).Inc()

	s.writeJSON(w, http.StatusOK, approvalResponse{
		ID:           result.Request.ID,
		Status:       result.Request.Status,
		AssignmentID: result.Assignment.ID,
		Assignment:   result.Assignment,
	})
}

func (s *Service) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	request, err := s.adoption.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.requestTransitions.WithLabelValues(string(types.RequestStatusRejected)).Inc()

	s.writeJSON(w, http.StatusOK, request)
}
