// Package adoption implements the NGO "adopt a village" workflow: request
// intake, approval into an NGO to village assignment, and rejection.
package adoption

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uprala/internal/utils"
	"uprala/internal/validate"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

type NGOStore interface {
	NGO(ctx context.Context, ngoID string) (*types.NGO, error)
	CreateNGO(ctx context.Context, ngo *types.NGO) error
}

type VillageStore interface {
	VillageExists(ctx context.Context, villageID string) (bool, error)
}

type LookupStore interface {
	SupportType(ctx context.Context, id string) (*types.SupportType, error)
	Scale(ctx context.Context, id string) (*types.Scale, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, request *types.NGORequest) error
	Request(ctx context.Context, requestID string) (*types.NGORequest, error)
	RejectRequest(ctx context.Context, requestID string) (*types.NGORequest, error)
	ApproveRequest(ctx context.Context, requestID string) (*types.NGORequest, *types.Assignment, error)
}

type AssignmentStore interface {
	AssignmentFor(ctx context.Context, ngoID, villageID string) (*types.Assignment, error)
}

type Service struct {
	logger      logrus.FieldLogger
	ngos        NGOStore
	villages    VillageStore
	lookups     LookupStore
	requests    RequestStore
	assignments AssignmentStore
}

func New(
	logger logrus.FieldLogger,
	ngos NGOStore,
	villages VillageStore,
	lookups LookupStore,
	requests RequestStore,
	assignments AssignmentStore,
) *Service {
	return &Service{
		logger:      logger,
		ngos:        ngos,
		villages:    villages,
		lookups:     lookups,
		requests:    requests,
		assignments: assignments,
	}
}

// CreateRequest records a PENDING request. The NGO is taken from NGOID when
// present, otherwise a new NGO is created from NGOName so every request is
// linked to an NGO row.
func (s *Service) CreateRequest(ctx context.Context, input *types.CreateRequestInput) (*types.NGORequest, error) {

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.villages.VillageExists(ctx, input.VillageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check village: %w", err)
	}
	if !exists {
		return nil, types.ErrVillageNotFound
	}

	if _, err := s.lookups.SupportType(ctx, input.SupportTypeID); err != nil {
		return nil, err
	}

	if _, err := s.lookups.Scale(ctx, input.ScaleID); err != nil {
		return nil, err
	}

	ngo, err := s.resolveNGO(ctx, input)
	if err != nil {
		return nil, err
	}

	request := &types.NGORequest{
		NGOID:         &ngo.ID,
		NGOName:       &ngo.Name,
		NGOType:       ngo.Type,
		VillageID:     input.VillageID,
		SupportTypeID: input.SupportTypeID,
		ScaleID:       input.ScaleID,
		ContactPerson: strings.TrimSpace(input.ContactPerson),
		Designation:   utils.TrimPtr(input.Designation),
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		Remarks:       utils.TrimPtr(input.Remarks),
	}

	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"ngo_id":     ngo.ID,
		"village_id": request.VillageID,
	}).Info("adoption request created")

	return request, nil
}

func (s *Service) resolveNGO(ctx context.Context, input *types.CreateRequestInput) (*types.NGO, error) {
	if id := utils.PtrString(input.NGOID); strings.TrimSpace(id) != "" {
		return s.ngos.NGO(ctx, strings.TrimSpace(id))
	}

	name := utils.NormalizeSpace(utils.PtrString(input.NGOName))
	if name == "" {
		return nil, types.NewValidationError("ngo is required", map[string]string{
			"ngoId": "is required when ngoName is not set",
		})
	}

	ngo := &types.NGO{Name: name, Type: utils.TrimPtr(input.NGOType)}
	if err := s.ngos.CreateNGO(ctx, ngo); err != nil {
		return nil, err
	}

	return ngo, nil
}

// Approve moves a request to APPROVED and guarantees an assignment exists for
// its (ngo, village) pair. Approving an already approved request returns the
// existing assignment and changes nothing.
func (s *Service) Approve(ctx context.Context, requestID string) (*types.ApprovalResult, error) {

	request, err := s.requests.Request(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status == types.RequestStatusApproved && request.NGOID != nil {
		assignment, err := s.assignments.AssignmentFor(ctx, *request.NGOID, request.VillageID)
		if err == nil {
			return &types.ApprovalResult{Request: request, Assignment: assignment}, nil
		}
		if !errors.Is(err, types.ErrAssignmentNotFound) {
			return nil, err
		}
		// Approved without an assignment; repair it below.
		s.logger.WithField("request_id", requestID).Warn("approved request missing assignment, recreating")
	}

	if request.NGOID == nil || *request.NGOID == "" {
		return nil, types.NewValidationError("request has no linked NGO", map[string]string{
			"ngoId": "is required",
		})
	}

	request, assignment, err := s.requests.ApproveRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id":    request.ID,
		"assignment_id": assignment.ID,
	}).Info("adoption request approved")

	return &types.ApprovalResult{Request: request, Assignment: assignment}, nil
}

// Reject moves a request to REJECTED. Rejecting twice is harmless; rejecting an
// approved request is a conflict since its assignment already exists. The
// status check and the update happen under the store's row lock.
func (s *Service) Reject(ctx context.Context, requestID string) (*types.NGORequest, error) {

	request, err := s.requests.RejectRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("request_id", request.ID).Info("adoption request rejected")

	return request, nil
}
