package store

import (
	"context"
	"fmt"

	"uprala/internal/utils"
	"uprala/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assignmentTableName = "uprala.ngo_villages"

var assignmentColumns = utils.StructTagValues(types.Assignment{})

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Assignments lists every NGO to village link, newest first, with the NGO,
// village, support type and scale embedded.
func (r *AssignmentRepository) Assignments(ctx context.Context) ([]*types.Assignment, error) {

	query, args, err := psql().Select(assignmentColumns...).From(assignmentTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate assignments query: %w", err)
	}

	var assignments = make([]*types.Assignment, 0)
	err = pgxscan.Select(ctx, r.pool, &assignments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	if err := hydrateAssignments(ctx, r.pool, assignments, true); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *AssignmentRepository) AssignmentsByVillage(ctx context.Context, villageID string) ([]*types.Assignment, error) {

	assignments, err := assignmentsByVillageIDs(ctx, r.pool, []string{villageID})
	if err != nil {
		return nil, err
	}

	if err := hydrateAssignments(ctx, r.pool, assignments, false); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *AssignmentRepository) AssignmentFor(ctx context.Context, ngoID, villageID string) (*types.Assignment, error) {
	return assignmentFor(ctx, r.pool, ngoID, villageID)
}

func assignmentFor(ctx context.Context, q querier, ngoID, villageID string) (*types.Assignment, error) {
	query, args, err := psql().Select(assignmentColumns...).From(assignmentTableName).
		Where(sq.Eq{"ngo_id": ngoID, "village_id": villageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate assignment query: %w", err)
	}

	var assignment = new(types.Assignment)
	err = pgxscan.Get(ctx, q, assignment, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch assignment", types.ErrAssignmentNotFound)
	}

	return assignment, nil
}

func assignmentsByVillageIDs(ctx context.Context, q querier, villageIDs []string) ([]*types.Assignment, error) {
	var assignments = make([]*types.Assignment, 0)
	if len(villageIDs) == 0 {
		return assignments, nil
	}

	query, args, err := psql().Select(assignmentColumns...).From(assignmentTableName).
		Where(sq.Eq{"village_id": villageIDs}).
		OrderBy("created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate village assignments query: %w", err)
	}

	err = pgxscan.Select(ctx, q, &assignments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch village assignments: %w", err)
	}

	return assignments, nil
}

func hydrateAssignments(ctx context.Context, q querier, assignments []*types.Assignment, withVillage bool) error {
	if len(assignments) == 0 {
		return nil
	}

	var ngoIDs, villageIDs, supportTypeIDs, scaleIDs []string
	for _, a := range assignments {
		ngoIDs = append(ngoIDs, a.NGOID)
		if withVillage {
			villageIDs = append(villageIDs, a.VillageID)
		}
		if a.SupportTypeID != nil {
			supportTypeIDs = append(supportTypeIDs, *a.SupportTypeID)
		}
		if a.ScaleID != nil {
			scaleIDs = append(scaleIDs, *a.ScaleID)
		}
	}

	rel, err := loadRelations(ctx, q, ngoIDs, villageIDs, supportTypeIDs, scaleIDs)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		a.NGO = rel.ngos[a.NGOID]
		if withVillage {
			a.Village = rel.villages[a.VillageID]
		}
		if a.SupportTypeID != nil {
			a.SupportType = rel.supportTypes[*a.SupportTypeID]
		}
		if a.ScaleID != nil {
			a.Scale = rel.scales[*a.ScaleID]
		}
	}

	return nil
}
