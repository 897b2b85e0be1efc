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

const (
	supportTypeTableName = "uprala.support_types"
	scaleTableName       = "uprala.scales"
)

var (
	supportTypeColumns = utils.StructTagValues(types.SupportType{})
	scaleColumns       = utils.StructTagValues(types.Scale{})
)

// LookupRepository serves the support type and scale reference tables.
type LookupRepository struct {
	pool *pgxpool.Pool
}

func NewLookupRepository(pool *pgxpool.Pool) *LookupRepository {
	return &LookupRepository{pool: pool}
}

func listLookups[T any](ctx context.Context, q querier, table string, columns []string) ([]*T, error) {
	query, args, err := psql().Select(columns...).From(table).OrderBy("label asc").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s query: %w", table, err)
	}

	var out = make([]*T, 0)
	err = pgxscan.Select(ctx, q, &out, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}

	return out, nil
}

func getLookup[T any](ctx context.Context, q querier, table string, columns []string, id string, notFound error) (*T, error) {
	query, args, err := psql().Select(columns...).From(table).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s query: %w", table, err)
	}

	var out = new(T)
	err = pgxscan.Get(ctx, q, out, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch "+table, notFound)
	}

	return out, nil
}

func upsertLookupQuery(table string, columns []string, id, key, label string, now time.Time) (string, []any, error) {
	return psql().Insert(table).
		Columns("id", "key", "label", "created_at").
		Values(id, key, label, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET label = EXCLUDED.label RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

func (r *LookupRepository) SupportTypes(ctx context.Context) ([]*types.SupportType, error) {
	return listLookups[types.SupportType](ctx, r.pool, supportTypeTableName, supportTypeColumns)
}

func (r *LookupRepository) SupportType(ctx context.Context, id string) (*types.SupportType, error) {
	return getLookup[types.SupportType](ctx, r.pool, supportTypeTableName, supportTypeColumns, id, types.ErrSupportTypeNotFound)
}

func (r *LookupRepository) Scales(ctx context.Context) ([]*types.Scale, error) {
	return listLookups[types.Scale](ctx, r.pool, scaleTableName, scaleColumns)
}

func (r *LookupRepository) Scale(ctx context.Context, id string) (*types.Scale, error) {
	return getLookup[types.Scale](ctx, r.pool, scaleTableName, scaleColumns, id, types.ErrScaleNotFound)
}

func (r *LookupRepository) UpsertSupportType(ctx context.Context, key, label string) (*types.SupportType, error) {

	query, args, err := upsertLookupQuery(supportTypeTableName, supportTypeColumns, utils.NanoID(), key, label, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate upsert support type query: %w", err)
	}

	var out = new(types.SupportType)
	err = pgxscan.Get(ctx, r.pool, out, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert support type: %w", err)
	}

	return out, nil
}

func (r *LookupRepository) UpsertScale(ctx context.Context, key, label string) (*types.Scale, error) {

	query, args, err := upsertLookupQuery(scaleTableName, scaleColumns, utils.NanoID(), key, label, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate upsert scale query: %w", err)
	}

	var out = new(types.Scale)
	err = pgxscan.Get(ctx, r.pool, out, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert scale: %w", err)
	}

	return out, nil
}
