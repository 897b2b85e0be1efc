package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"uprala/internal/utils"
	"uprala/pkg/types"
)

// memoryDB backs every store interface the server and the adoption service
// need. It enforces the same uniqueness rules as the schema.
type memoryDB struct {
	mu  sync.Mutex
	seq int

	villages     map[string]*types.Village
	contacts     map[string]*types.Contact
	ngos         map[string]*types.NGO
	supportTypes []*types.SupportType
	scales       []*types.Scale
	requests     map[string]*types.NGORequest
	assignments  []*types.Assignment
	events       map[string]*types.Event

	pingErr error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		villages: make(map[string]*types.Village),
		contacts: make(map[string]*types.Contact),
		ngos:     make(map[string]*types.NGO),
		requests: make(map[string]*types.NGORequest),
		events:   make(map[string]*types.Event),
	}
}

func (m *memoryDB) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memoryDB) addLookups() (supportTypeID, scaleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &types.SupportType{ID: m.nextID("st"), Key: "food", Label: "Food", CreatedAt: time.Now()}
	sc := &types.Scale{ID: m.nextID("sc"), Key: "village", Label: "Whole village", CreatedAt: time.Now()}
	m.supportTypes = append(m.supportTypes, st)
	m.scales = append(m.scales, sc)
	return st.ID, sc.ID
}

func (m *memoryDB) Ping(ctx context.Context) error {
	return m.pingErr
}

// villages

func (m *memoryDB) hydrateVillage(v *types.Village) *types.Village {
	out := *v
	out.Contacts = make([]*types.Contact, 0)
	out.Assignments = make([]*types.Assignment, 0)
	for _, c := range m.contacts {
		if c.VillageID == v.ID {
			out.Contacts = append(out.Contacts, c)
		}
	}
	for _, a := range m.assignments {
		if a.VillageID == v.ID {
			out.Assignments = append(out.Assignments, a)
		}
	}
	return &out
}

func (m *memoryDB) Villages(ctx context.Context, filter *types.VillageFilter) ([]*types.Village, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Village, 0)
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, v := range m.villages {
		if q != "" && !strings.Contains(strings.ToLower(v.Name), q) &&
			!strings.Contains(strings.ToLower(utils.PtrString(v.District)), q) &&
			!strings.Contains(strings.ToLower(utils.PtrString(v.Description)), q) {
			continue
		}
		if filter.NeedsHelp != nil && v.NeedsHelp != *filter.NeedsHelp {
			continue
		}
		if filter.MostEffected != nil && v.MostEffected != *filter.MostEffected {
			continue
		}
		out = append(out, m.hydrateVillage(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryDB) Village(ctx context.Context, villageID string) (*types.Village, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.villages[villageID]
	if !ok {
		return nil, types.ErrVillageNotFound
	}
	return m.hydrateVillage(v), nil
}

func (m *memoryDB) VillageExists(ctx context.Context, villageID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.villages[villageID]
	return ok, nil
}

func (m *memoryDB) CreateVillage(ctx context.Context, village *types.Village) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range m.villages {
		if v.Name == village.Name {
			return fmt.Errorf("failed to insert village: %w: name already exists", types.ErrConflict)
		}
	}
	village.ID = m.nextID("v")
	village.CreatedAt = time.Now()
	village.UpdatedAt = village.CreatedAt
	village.Contacts = make([]*types.Contact, 0)
	village.Assignments = make([]*types.Assignment, 0)

	stored := *village
	m.villages[village.ID] = &stored
	return nil
}

func (m *memoryDB) UpdateVillage(ctx context.Context, villageID string, patch *types.VillagePatch) (*types.Village, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.villages[villageID]
	if !ok {
		return nil, types.ErrVillageNotFound
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.District != nil {
		v.District = patch.District
	}
	if patch.Description != nil {
		v.Description = patch.Description
	}
	if patch.NeedsHelp != nil {
		v.NeedsHelp = *patch.NeedsHelp
	}
	if patch.MostEffected != nil {
		v.MostEffected = *patch.MostEffected
	}
	v.UpdatedAt = time.Now()
	return m.hydrateVillage(v), nil
}

func (m *memoryDB) DeleteVillage(ctx context.Context, villageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.villages[villageID]; !ok {
		return types.ErrVillageNotFound
	}
	for _, r := range m.requests {
		if r.VillageID == villageID {
			return fmt.Errorf("failed to delete village: %w: record is referenced by other records", types.ErrConflict)
		}
	}
	for id, c := range m.contacts {
		if c.VillageID == villageID {
			delete(m.contacts, id)
		}
	}
	delete(m.villages, villageID)
	return nil
}

func (m *memoryDB) MarkVillages(ctx context.Context, flag types.VillageFlag, names []string) (*types.MarkVillagesResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &types.MarkVillagesResult{NotMatched: make([]string, 0)}
	for _, raw := range names {
		name := strings.ToLower(utils.NormalizeSpace(raw))
		if name == "" {
			continue
		}
		var matched int64
		for _, exact := range []bool{true, false} {
			for _, v := range m.villages {
				lower := strings.ToLower(v.Name)
				if (exact && lower == name) || (!exact && strings.Contains(lower, name)) {
					if flag == types.VillageFlagNeedsHelp {
						v.NeedsHelp = true
					} else {
						v.MostEffected = true
					}
					matched++
				}
			}
			if matched > 0 {
				break
			}
		}
		if matched == 0 {
			result.NotMatched = append(result.NotMatched, raw)
		}
		result.Updated += matched
	}
	return result, nil
}

// contacts

func (m *memoryDB) ContactsByVillage(ctx context.Context, villageID string, filter *types.ContactFilter) ([]*types.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Contact, 0)
	for _, c := range m.contacts {
		if c.VillageID != villageID || (filter.Role != "" && c.Role != filter.Role) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryDB) CreateContact(ctx context.Context, contact *types.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.villages[contact.VillageID]; !ok {
		return types.ErrVillageNotFound
	}
	if contact.Role == "" {
		contact.Role = types.ContactRolePatwari
	}
	contact.ID = m.nextID("c")
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	m.contacts[contact.ID] = contact
	return nil
}

func (m *memoryDB) UpdateContact(ctx context.Context, contactID string, patch *types.ContactPatch) (*types.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[contactID]
	if !ok {
		return nil, types.ErrContactNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		c.Phone = patch.Phone
	}
	if patch.Role != nil {
		c.Role = *patch.Role
	}
	return c, nil
}

func (m *memoryDB) DeleteContact(ctx context.Context, contactID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contacts[contactID]; !ok {
		return types.ErrContactNotFound
	}
	delete(m.contacts, contactID)
	return nil
}

// ngos

func (m *memoryDB) NGOs(ctx context.Context, filter *types.NGOFilter) ([]*types.NGO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.NGO, 0)
	q := strings.ToLower(filter.Query)
	for _, n := range m.ngos {
		if q == "" || strings.Contains(strings.ToLower(n.Name), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memoryDB) NGO(ctx context.Context, ngoID string) (*types.NGO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	return n, nil
}

func (m *memoryDB) CreateNGO(ctx context.Context, ngo *types.NGO) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.ngos {
		if n.Name == ngo.Name {
			return fmt.Errorf("failed to insert ngo: %w: name already exists", types.ErrConflict)
		}
	}
	ngo.ID = m.nextID("n")
	ngo.CreatedAt = time.Now()
	ngo.UpdatedAt = ngo.CreatedAt
	m.ngos[ngo.ID] = ngo
	return nil
}

func (m *memoryDB) UpdateNGO(ctx context.Context, ngoID string, patch *types.NGOPatch) (*types.NGO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.ngos[ngoID]
	if !ok {
		return nil, types.ErrNGONotFound
	}
	if patch.Name != nil {
		n.Name = *patch.Name
	}
	if patch.Type != nil {
		n.Type = patch.Type
	}
	return n, nil
}

func (m *memoryDB) DeleteNGO(ctx context.Context, ngoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ngos[ngoID]; !ok {
		return types.ErrNGONotFound
	}
	for _, r := range m.requests {
		if r.NGOID != nil && *r.NGOID == ngoID {
			return fmt.Errorf("failed to delete ngo: %w: record is referenced by other records", types.ErrConflict)
		}
	}
	delete(m.ngos, ngoID)
	return nil
}

// lookups

func (m *memoryDB) SupportTypes(ctx context.Context) ([]*types.SupportType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.SupportType{}, m.supportTypes...), nil
}

func (m *memoryDB) Scales(ctx context.Context) ([]*types.Scale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.Scale{}, m.scales...), nil
}

func (m *memoryDB) SupportType(ctx context.Context, id string) (*types.SupportType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.supportTypes {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, types.ErrSupportTypeNotFound
}

func (m *memoryDB) Scale(ctx context.Context, id string) (*types.Scale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sc := range m.scales {
		if sc.ID == id {
			return sc, nil
		}
	}
	return nil, types.ErrScaleNotFound
}

// requests and assignments

func (m *memoryDB) CreateRequest(ctx context.Context, request *types.NGORequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request.ID = m.nextID("r")
	request.Status = types.RequestStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	stored := *request
	m.requests[request.ID] = &stored
	return nil
}

func (m *memoryDB) Request(ctx context.Context, requestID string) (*types.NGORequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}
	out := *r
	return &out, nil
}

func (m *memoryDB) RequestDetail(ctx context.Context, requestID string) (*types.NGORequest, error) {
	r, err := m.Request(ctx, requestID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r.NGOID != nil {
		r.NGO = m.ngos[*r.NGOID]
	}
	if v, ok := m.villages[r.VillageID]; ok {
		r.Village = m.hydrateVillage(v)
	}
	return r, nil
}

func (m *memoryDB) Requests(ctx context.Context, filter *types.RequestFilter) ([]*types.NGORequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.NGORequest, 0)
	for _, r := range m.requests {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.VillageID != "" && r.VillageID != filter.VillageID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryDB) RejectRequest(ctx context.Context, requestID string) (*types.NGORequest, error) {
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
	}
	out := *r
	return &out, nil
}

func (m *memoryDB) ApproveRequest(ctx context.Context, requestID string) (*types.NGORequest, *types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[requestID]
	if !ok {
		return nil, nil, types.ErrRequestNotFound
	}
	r.Status = types.RequestStatusApproved

	for _, a := range m.assignments {
		if a.NGOID == *r.NGOID && a.VillageID == r.VillageID {
			out := *r
			return &out, a, nil
		}
	}

	a := types.NewAssignmentFromRequest(r)
	a.ID = m.nextID("a")
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.assignments = append(m.assignments, a)

	out := *r
	return &out, a, nil
}

func (m *memoryDB) AssignmentFor(ctx context.Context, ngoID, villageID string) (*types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.assignments {
		if a.NGOID == ngoID && a.VillageID == villageID {
			return a, nil
		}
	}
	return nil, types.ErrAssignmentNotFound
}

func (m *memoryDB) Assignments(ctx context.Context) ([]*types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.Assignment{}, m.assignments...), nil
}

func (m *memoryDB) AssignmentsByVillage(ctx context.Context, villageID string) ([]*types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Assignment, 0)
	for _, a := range m.assignments {
		if a.VillageID == villageID {
			out = append(out, a)
		}
	}
	return out, nil
}

// events

func (m *memoryDB) Events(ctx context.Context, filter *types.EventFilter) ([]*types.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Event, 0)
	q := strings.ToLower(filter.Query)
	for _, e := range m.events {
		if q == "" || strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryDB) Event(ctx context.Context, eventID string) (*types.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return nil, types.ErrEventNotFound
	}
	return e, nil
}

func (m *memoryDB) images(eventID string, inputs []*types.EventImageInput) []*types.EventImage {
	images := make([]*types.EventImage, 0, len(inputs))
	for i, in := range inputs {
		img := &types.EventImage{
			ID:      m.nextID("img"),
			EventID: eventID,
			Src:     in.Src,
			Thumb:   in.Thumb,
			Caption: in.Caption,
			Order:   i,
		}
		if in.Order != nil {
			img.Order = *in.Order
		}
		images = append(images, img)
	}
	return images
}

func (m *memoryDB) CreateEvent(ctx context.Context, input *types.CreateEventInput) (*types.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &types.Event{
		ID:          m.nextID("e"),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		CreatedAt:   time.Now(),
	}
	e.Images = m.images(e.ID, input.Images)
	m.events[e.ID] = e
	return e, nil
}

func (m *memoryDB) UpdateEvent(ctx context.Context, eventID string, patch *types.EventPatch) (*types.Event, []*types.EventImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return nil, nil, types.ErrEventNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Location != nil {
		e.Location = patch.Location
	}

	var dropped []*types.EventImage
	if patch.Images != nil {
		kept := make(map[string]bool)
		for _, in := range patch.Images {
			kept[in.Src] = true
		}
		for _, img := range e.Images {
			if !kept[img.Src] {
				dropped = append(dropped, img)
			}
		}
		e.Images = m.images(e.ID, patch.Images)
	}
	return e, dropped, nil
}

func (m *memoryDB) DeleteEvent(ctx context.Context, eventID string) ([]*types.EventImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.events[eventID]
	if !ok {
		return nil, types.ErrEventNotFound
	}
	delete(m.events, eventID)
	return e.Images, nil
}
