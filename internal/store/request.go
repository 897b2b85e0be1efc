package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uprala/internal/utils"
	"uprala/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTableName = "uprala.ngo_requests"

var requestColumns = utils.StructTagValues(types.NGORequest{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func requestsQuery(filter *types.RequestFilter) sq.SelectBuilder {
	query := psql().Select(requestColumns...).From(requestTableName).OrderBy("created_at desc")
	if filter == nil {
		return query
	}

	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status})
	}
	if filter.VillageID != "" {
		query = query.Where(sq.Eq{"village_id": filter.VillageID})
	}
	if filter.NGOID != "" {
		query = query.Where(sq.Eq{"ngo_id": filter.NGOID})
	}

	return query
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *types.NGORequest) error {

	now := time.Now()
	request.ID = utils.NanoID()
	request.Status = types.RequestStatusPending
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().Insert(requestTableName).SetMap(utils.StructToMap(request)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to insert request", nil)
	}

	return nil
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.NGORequest, error) {
	return requestByID(ctx, r.pool, requestID, false)
}

// RequestDetail returns a request with its NGO, village, support type and
// scale embedded.
func (r *RequestRepository) RequestDetail(ctx context.Context, requestID string) (*types.NGORequest, error) {

	request, err := requestByID(ctx, r.pool, requestID, false)
	if err != nil {
		return nil, err
	}

	if err := hydrateRequests(ctx, r.pool, []*types.NGORequest{request}); err != nil {
		return nil, err
	}

	return request, nil
}

func requestByID(ctx context.Context, q querier, requestID string, forUpdate bool) (*types.NGORequest, error) {
	builder := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request = new(types.NGORequest)
	err = pgxscan.Get(ctx, q, request, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch request", types.ErrRequestNotFound)
	}

	return request, nil
}

func (r *RequestRepository) Requests(ctx context.Context, filter *types.RequestFilter) ([]*types.NGORequest, error) {

	query, args, err := requestsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests query: %w", err)
	}

	var requests = make([]*types.NGORequest, 0)
	err = pgxscan.Select(ctx, r.pool, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	if err := hydrateRequests(ctx, r.pool, requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func setStatusQuery(requestID string, status types.RequestStatus, now time.Time) (string, []any, error) {
	return psql().Update(requestTableName).
		Set("status", status).
		Set("updated_at", now).
		Where(sq.Eq{"id": requestID}).
		Suffix("RETURNING " + strings.Join(requestColumns, ", ")).
		ToSql()
}

// RejectRequest moves a request to REJECTED under a row lock, so it cannot
// interleave with ApproveRequest. A REJECTED request is returned unchanged and
// an APPROVED one fails with ErrRequestAlreadyApproved.
func (r *RequestRepository) RejectRequest(ctx context.Context, requestID string) (*types.NGORequest, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin reject transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	request, err := requestByID(ctx, tx, requestID, true)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case types.RequestStatusRejected:
		return request, nil
	case types.RequestStatusApproved:
		return nil, types.ErrRequestAlreadyApproved
	}

	query, args, err := setStatusQuery(requestID, types.RequestStatusRejected, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate reject request query: %w", err)
	}

	err = pgxscan.Get(ctx, tx, request, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to reject request", types.ErrRequestNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reject transaction: %w", err)
	}

	return request, nil
}

func insertAssignmentQuery(assignment *types.Assignment) (string, []any, error) {
	return psql().Insert(assignmentTableName).
		SetMap(utils.StructToMap(assignment)).
		Suffix("ON CONFLICT ON CONSTRAINT ngo_villages_ngo_village_key DO NOTHING").
		ToSql()
}

// ApproveRequest marks a request approved and links its NGO to its village in
// one transaction. The request row is locked for the duration, and an
// existing (ngo, village) assignment is reused rather than duplicated.
func (r *RequestRepository) ApproveRequest(ctx context.Context, requestID string) (*types.NGORequest, *types.Assignment, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin approve transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	request, err := requestByID(ctx, tx, requestID, true)
	if err != nil {
		return nil, nil, err
	}

	if request.NGOID == nil || *request.NGOID == "" {
		return nil, nil, types.NewValidationError("request has no linked NGO", map[string]string{"ngoId": "is required"})
	}

	now := time.Now()

	if request.Status != types.RequestStatusApproved {
		query, args, err := setStatusQuery(requestID, types.RequestStatusApproved, now)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate approve request query: %w", err)
		}

		err = pgxscan.Get(ctx, tx, request, query, args...)
		if err != nil {
			return nil, nil, translateError(err, "failed to approve request", types.ErrRequestNotFound)
		}
	}

	assignment := types.NewAssignmentFromRequest(request)
	assignment.ID = utils.NanoID()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now

	query, args, err := insertAssignmentQuery(assignment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate insert assignment query: %w", err)
	}

	_, err = tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to insert assignment", nil)
	}

	assignment, err = assignmentFor(ctx, tx, *request.NGOID, request.VillageID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit approve transaction: %w", err)
	}

	return request, assignment, nil
}

func hydrateRequests(ctx context.Context, q querier, requests []*types.NGORequest) error {
	if len(requests) == 0 {
		return nil
	}

	var ngoIDs, villageIDs, supportTypeIDs, scaleIDs []string
	for _, req := range requests {
		if req.NGOID != nil {
			ngoIDs = append(ngoIDs, *req.NGOID)
		}
		villageIDs = append(villageIDs, req.VillageID)
		supportTypeIDs = append(supportTypeIDs, req.SupportTypeID)
		scaleIDs = append(scaleIDs, req.ScaleID)
	}

	rel, err := loadRelations(ctx, q, ngoIDs, villageIDs, supportTypeIDs, scaleIDs)
	if err != nil {
		return err
	}

	for _, req := range requests {
		if req.NGOID != nil {
			req.NGO = rel.ngos[*req.NGOID]
		}
		req.Village = rel.villages[req.VillageID]
		req.SupportType = rel.supportTypes[req.SupportTypeID]
		req.Scale = rel.scales[req.ScaleID]
	}

	return nil
}

// relations holds the rows referenced by a batch of requests or assignments,
// keyed by id.
type relations struct {
	ngos         map[string]*types.NGO
	villages     map[string]*types.Village
	supportTypes map[string]*types.SupportType
	scales       map[string]*types.Scale
}

func loadRelations(ctx context.Context, q querier, ngoIDs, villageIDs, supportTypeIDs, scaleIDs []string) (*relations, error) {
	rel := &relations{
		ngos:         make(map[string]*types.NGO),
		villages:     make(map[string]*types.Village),
		supportTypes: make(map[string]*types.SupportType),
		scales:       make(map[string]*types.Scale),
	}

	ngos, err := selectByIDs[types.NGO](ctx, q, ngoTableName, ngoColumns, uniqueIDs(ngoIDs...))
	if err != nil {
		return nil, err
	}
	for _, n := range ngos {
		rel.ngos[n.ID] = n
	}

	villages, err := selectByIDs[types.Village](ctx, q, villageTableName, villageColumns, uniqueIDs(villageIDs...))
	if err != nil {
		return nil, err
	}
	for _, v := range villages {
		rel.villages[v.ID] = v
	}

	supportTypes, err := selectByIDs[types.SupportType](ctx, q, supportTypeTableName, supportTypeColumns, uniqueIDs(supportTypeIDs...))
	if err != nil {
		return nil, err
	}
	for _, st := range supportTypes {
		rel.supportTypes[st.ID] = st
	}

	scales, err := selectByIDs[types.Scale](ctx, q, scaleTableName, scaleColumns, uniqueIDs(scaleIDs...))
	if err != nil {
		return nil, err
	}
	for _, s := range scales {
		rel.scales[s.ID] = s
	}

	return rel, nil
}
