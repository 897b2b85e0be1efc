package adoption

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"uprala/pkg/types"
)

// memoryStore is an in-memory stand-in for the postgres repositories. A
// single mutex serializes ApproveRequest the way the row lock does.
type memoryStore struct {
	mu          sync.Mutex
	seq         int
	ngos        map[string]*types.NGO
	villages    map[string]*types.Village
	supportType map[string]*types.SupportType
	scales      map[string]*types.Scale
	requests    map[string]*types.NGORequest
	assignments []*types.Assignment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		ngos:        make(map[string]*types.NGO),
		villages:    make(map[string]*types.Village),
		supportType: make(map[string]*types.SupportType),
		scales:      make(map[string]*types.Scale),
		requests:    make(map[string]*types.NGORequest),
	}
}

func (m *memoryStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memoryStore) NGO(ctx context.Context, ngoID string) (*types.NGO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	return n, nil
}

func (m *memoryStore) CreateNGO(ctx context.Context, ngo *types.NGO) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ngos {
		if strings.EqualFold(existing.Name, ngo.Name) {
			return fmt.Errorf("failed to insert ngo: %w: name already exists", types.ErrConflict)
		}
	}
	ngo.ID = m.nextID("ngo")
	ngo.CreatedAt = time.Now()
	ngo.UpdatedAt = ngo.CreatedAt
	m.ngos[ngo.ID] = ngo
	return nil
}

func (m *memoryStore) addVillage(name string) *types.Village {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &types.Village{ID: m.nextID("village"), Name: name}
	m.villages[v.ID] = v
	return v
}

func (m *memoryStore) addLookups() (*types.SupportType, *types.Scale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &types.SupportType{ID: m.nextID("st"), Key: "FOOD", Label: "Food"}
	sc := &types.Scale{ID: m.nextID("sc"), Key: "SMALL", Label: "Small"}
	m.supportType[st.ID] = st
	m.scales[sc.ID] = sc
	return st, sc
}

func (m *memoryStore) VillageExists(ctx context.Context, villageID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.villages[villageID]
	return ok, nil
}

func (m *memoryStore) SupportType(ctx context.Context, id string) (*types.SupportType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.supportType[id]
	if !ok {
		return nil, types.ErrSupportTypeNotFound
	}
	return st, nil
}

func (m *memoryStore) Scale(ctx context.Context, id string) (*types.Scale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc, ok := m.scales[id]
	if !ok {
		return nil, types.ErrScaleNotFound
	}
	return sc, nil
}

func (m *memoryStore) CreateRequest(ctx context.Context, request *types.NGORequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	request.ID = m.nextID("req")
	request.Status = types.RequestStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	m.requests[request.ID] = request
	return nil
}

func (m *memoryStore) Request(ctx context.Context, requestID string) (*types.NGORequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryStore) RejectRequest(ctx context.Context, requestID string) (*types.NGORequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}
	switch r.Status {
	case types.RequestStatusApproved:
		return nil, types.ErrRequestAlreadyApproved
	case types.RequestStatusPending:
		r.Status = types.RequestStatusRejected
		r.UpdatedAt = time.Now()
	}
	cp := *r
	return &cp, nil
}

// setStatus writes a status directly, bypassing the workflow.
func (m *memoryStore) setStatus(requestID string, status types.RequestStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[requestID].Status = status
}

func (m *memoryStore) ApproveRequest(ctx context.Context, requestID string) (*types.NGORequest, *types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[requestID]
	if !ok {
		return nil, nil, types.ErrRequestNotFound
	}
	if r.NGOID == nil {
		return nil, nil, types.NewValidationError("request has no linked NGO", nil)
	}

	r.Status = types.RequestStatusApproved
	r.UpdatedAt = time.Now()

	existing := m.assignmentForLocked(*r.NGOID, r.VillageID)
	if existing == nil {
		existing = types.NewAssignmentFromRequest(r)
		existing.ID = m.nextID("assignment")
		existing.CreatedAt = time.Now()
		existing.UpdatedAt = existing.CreatedAt
		m.assignments = append(m.assignments, existing)
	}

	cp := *r
	return &cp, existing, nil
}

func (m *memoryStore) AssignmentFor(ctx context.Context, ngoID, villageID string) (*types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.assignmentForLocked(ngoID, villageID)
	if a == nil {
		return nil, types.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *memoryStore) assignmentForLocked(ngoID, villageID string) *types.Assignment {
	for _, a := range m.assignments {
		if a.NGOID == ngoID && a.VillageID == villageID {
			return a
		}
	}
	return nil
}

func (m *memoryStore) assignmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.assignments)
}
