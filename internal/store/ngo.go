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
	"github.com/jackc/pgx/v5/pgxpool"
)

const ngoTableName = "uprala.ngos"

var ngoColumns = utils.StructTagValues(types.NGO{})

type NGORepository struct {
	pool *pgxpool.Pool
}

func NewNGORepository(pool *pgxpool.Pool) *NGORepository {
	return &NGORepository{pool: pool}
}

func (r *NGORepository) NGOs(ctx context.Context, filter *types.NGOFilter) ([]*types.NGO, error) {

	query := psql().Select(ngoColumns...).From(ngoTableName).OrderBy("created_at desc")
	if filter != nil && strings.TrimSpace(filter.Query) != "" {
		query = query.Where(searchWhere(filter.Query, "name"))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ngos query: %w", err)
	}

	var ngos = make([]*types.NGO, 0)
	err = pgxscan.Select(ctx, r.pool, &ngos, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ngos: %w", err)
	}

	return ngos, nil
}

func (r *NGORepository) NGO(ctx context.Context, ngoID string) (*types.NGO, error) {

	query, args, err := psql().Select(ngoColumns...).From(ngoTableName).
		Where(sq.Eq{"id": ngoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ngo query: %w", err)
	}

	var ngo = new(types.NGO)
	err = pgxscan.Get(ctx, r.pool, ngo, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch ngo", types.ErrNGONotFound)
	}

	return ngo, nil
}

func (r *NGORepository) CreateNGO(ctx context.Context, ngo *types.NGO) error {

	now := time.Now()
	ngo.ID = utils.NanoID()
	ngo.CreatedAt = now
	ngo.UpdatedAt = now

	query, args, err := psql().Insert(ngoTableName).SetMap(utils.StructToMap(ngo)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert ngo query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to insert ngo", nil)
	}

	return nil
}

func (r *NGORepository) UpdateNGO(ctx context.Context, ngoID string, patch *types.NGOPatch) (*types.NGO, error) {

	fields := utils.PatchToMap(patch)
	if len(fields) == 0 {
		return r.NGO(ctx, ngoID)
	}
	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(ngoTableName).
		SetMap(fields).
		Where(sq.Eq{"id": ngoID}).
		Suffix("RETURNING " + strings.Join(ngoColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update ngo query: %w", err)
	}

	var ngo = new(types.NGO)
	err = pgxscan.Get(ctx, r.pool, ngo, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to update ngo", types.ErrNGONotFound)
	}

	return ngo, nil
}

// DeleteNGO fails with a conflict while requests or assignments still point
// at the NGO.
func (r *NGORepository) DeleteNGO(ctx context.Context, ngoID string) error {

	query, args, err := psql().Delete(ngoTableName).Where(sq.Eq{"id": ngoID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete ngo query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to delete ngo", nil)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrNGONotFound
	}

	return nil
}

// UpsertNGOByName inserts an NGO or refreshes its type when the name exists.
func (r *NGORepository) UpsertNGOByName(ctx context.Context, ngo *types.NGO) error {

	now := time.Now()
	ngo.ID = utils.NanoID()
	ngo.CreatedAt = now
	ngo.UpdatedAt = now

	query, args, err := psql().Insert(ngoTableName).
		SetMap(utils.StructToMap(ngo)).
		Suffix("ON CONFLICT (name) DO UPDATE SET type = COALESCE(EXCLUDED.type, ngos.type), updated_at = EXCLUDED.updated_at RETURNING " + strings.Join(ngoColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert ngo query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, ngo, query, args...)
	if err != nil {
		return translateError(err, "failed to upsert ngo", nil)
	}

	return nil
}
