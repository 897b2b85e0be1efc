package server

import (
	"context"

	"uprala/pkg/types"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type VillageStore interface {
	Villages(ctx context.Context, filter *types.VillageFilter) ([]*types.Village, error)
	Village(ctx context.Context, villageID string) (*types.Village, error)
	VillageExists(ctx context.Context, villageID string) (bool, error)
	CreateVillage(ctx context.Context, village *types.Village) error
	UpdateVillage(ctx context.Context, villageID string, patch *types.VillagePatch) (*types.Village, error)
	DeleteVillage(ctx context.Context, villageID string) error
	MarkVillages(ctx context.Context, flag types.VillageFlag, names []string) (*types.MarkVillagesResult, error)
}

type ContactStore interface {
	ContactsByVillage(ctx context.Context, villageID string, filter *types.ContactFilter) ([]*types.Contact, error)
	CreateContact(ctx context.Context, contact *types.Contact) error
	UpdateContact(ctx context.Context, contactID string, patch *types.ContactPatch) (*types.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
}

type NGOStore interface {
	NGOs(ctx context.Context, filter *types.NGOFilter) ([]*types.NGO, error)
	NGO(ctx context.Context, ngoID string) (*types.NGO, error)
	CreateNGO(ctx context.Context, ngo *types.NGO) error
	UpdateNGO(ctx context.Context, ngoID string, patch *types.NGOPatch) (*types.NGO, error)
	DeleteNGO(ctx context.Context, ngoID string) error
}

type LookupStore interface {
	SupportTypes(ctx context.Context) ([]*types.SupportType, error)
	Scales(ctx context.Context) ([]*types.Scale, error)
}

type RequestStore interface {
	Requests(ctx context.Context, filter *types.RequestFilter) ([]*types.NGORequest, error)
	RequestDetail(ctx context.Context, requestID string) (*types.NGORequest, error)
}

type AssignmentStore interface {
	Assignments(ctx context.Context) ([]*types.Assignment, error)
	AssignmentsByVillage(ctx context.Context, villageID string) ([]*types.Assignment, error)
}

type EventStore interface {
	Events(ctx context.Context, filter *types.EventFilter) ([]*types.Event, error)
	Event(ctx context.Context, eventID string) (*types.Event, error)
	CreateEvent(ctx context.Context, input *types.CreateEventInput) (*types.Event, error)
	UpdateEvent(ctx context.Context, eventID string, patch *types.EventPatch) (*types.Event, []*types.EventImage, error)
	DeleteEvent(ctx context.Context, eventID string) ([]*types.EventImage, error)
}

// AdoptionService is the request workflow, implemented by *adoption.Service.
type AdoptionService interface {
	CreateRequest(ctx context.Context, input *types.CreateRequestInput) (*types.NGORequest, error)
	Approve(ctx context.Context, requestID string) (*types.ApprovalResult, error)
	Reject(ctx context.Context, requestID string) (*types.NGORequest, error)
}
