package store

import (
	"context"
	"errors"
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

const villageTableName = "uprala.villages"

var villageColumns = utils.StructTagValues(types.Village{})

type VillageRepository struct {
	pool *pgxpool.Pool
}

func NewVillageRepository(pool *pgxpool.Pool) *VillageRepository {
	return &VillageRepository{pool: pool}
}

func villagesQuery(filter *types.VillageFilter) sq.SelectBuilder {
	query := psql().Select(villageColumns...).From(villageTableName).OrderBy("name asc")
	if filter == nil {
		return query
	}

	if strings.TrimSpace(filter.Query) != "" {
		query = query.Where(searchWhere(filter.Query, "name", "district", "description"))
	}
	if filter.NeedsHelp != nil {
		query = query.Where(sq.Eq{"needs_help": *filter.NeedsHelp})
	}
	if filter.MostEffected != nil {
		query = query.Where(sq.Eq{"most_effected": *filter.MostEffected})
	}

	return query
}

// Villages lists villages by name with their contacts and assignments embedded.
func (r *VillageRepository) Villages(ctx context.Context, filter *types.VillageFilter) ([]*types.Village, error) {

	query, args, err := villagesQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate villages query: %w", err)
	}

	var villages = make([]*types.Village, 0)
	err = pgxscan.Select(ctx, r.pool, &villages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch villages: %w", err)
	}

	if err := r.hydrate(ctx, villages...); err != nil {
		return nil, err
	}

	return villages, nil
}

func (r *VillageRepository) Village(ctx context.Context, villageID string) (*types.Village, error) {

	village, err := villageByID(ctx, r.pool, villageID)
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, village); err != nil {
		return nil, err
	}

	return village, nil
}

// VillageExists is the cheap existence check used before writing rows that
// reference a village.
func (r *VillageRepository) VillageExists(ctx context.Context, villageID string) (bool, error) {
	_, err := villageByID(ctx, r.pool, villageID)
	if err != nil {
		if errors.Is(err, types.ErrVillageNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func villageByID(ctx context.Context, q querier, villageID string) (*types.Village, error) {
	query, args, err := psql().Select(villageColumns...).From(villageTableName).
		Where(sq.Eq{"id": villageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate village query: %w", err)
	}

	var village = new(types.Village)
	err = pgxscan.Get(ctx, q, village, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch village", types.ErrVillageNotFound)
	}

	return village, nil
}

func (r *VillageRepository) hydrate(ctx context.Context, villages ...*types.Village) error {
	if len(villages) == 0 {
		return nil
	}

	ids := make([]string, 0, len(villages))
	for _, v := range villages {
		ids = append(ids, v.ID)
		v.Contacts = make([]*types.Contact, 0)
		v.Assignments = make([]*types.Assignment, 0)
	}

	contacts, err := contactsByVillageIDs(ctx, r.pool, ids)
	if err != nil {
		return err
	}

	assignments, err := assignmentsByVillageIDs(ctx, r.pool, ids)
	if err != nil {
		return err
	}

	if err := hydrateAssignments(ctx, r.pool, assignments, false); err != nil {
		return err
	}

	byID := make(map[string]*types.Village, len(villages))
	for _, v := range villages {
		byID[v.ID] = v
	}
	for _, c := range contacts {
		if v, ok := byID[c.VillageID]; ok {
			v.Contacts = append(v.Contacts, c)
		}
	}
	for _, a := range assignments {
		if v, ok := byID[a.VillageID]; ok {
			v.Assignments = append(v.Assignments, a)
		}
	}

	return nil
}

func (r *VillageRepository) CreateVillage(ctx context.Context, village *types.Village) error {

	now := time.Now()
	village.ID = utils.NanoID()
	village.CreatedAt = now
	village.UpdatedAt = now

	query, args, err := psql().Insert(villageTableName).SetMap(utils.StructToMap(village)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert village query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to insert village", nil)
	}

	village.Contacts = make([]*types.Contact, 0)
	village.Assignments = make([]*types.Assignment, 0)

	return nil
}

func (r *VillageRepository) UpdateVillage(ctx context.Context, villageID string, patch *types.VillagePatch) (*types.Village, error) {

	fields := utils.PatchToMap(patch)
	if len(fields) == 0 {
		return r.Village(ctx, villageID)
	}
	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(villageTableName).
		SetMap(fields).
		Where(sq.Eq{"id": villageID}).
		Suffix("RETURNING " + strings.Join(villageColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update village query: %w", err)
	}

	var village = new(types.Village)
	err = pgxscan.Get(ctx, r.pool, village, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to update village", types.ErrVillageNotFound)
	}

	if err := r.hydrate(ctx, village); err != nil {
		return nil, err
	}

	return village, nil
}

// DeleteVillage removes a village and its contacts. Villages referenced by
// requests or assignments are kept and a conflict is returned.
func (r *VillageRepository) DeleteVillage(ctx context.Context, villageID string) error {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin delete village transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query, args, err := psql().Delete(contactTableName).Where(sq.Eq{"village_id": villageID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete contacts query: %w", err)
	}

	_, err = tx.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to delete village contacts", nil)
	}

	query, args, err = psql().Delete(villageTableName).Where(sq.Eq{"id": villageID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete village query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to delete village", nil)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrVillageNotFound
	}

	return tx.Commit(ctx)
}

type markQueryFunc func(column, name string, now time.Time) (string, []any, error)

func markExactQuery(column, name string, now time.Time) (string, []any, error) {
	return psql().Update(villageTableName).
		Set(column, true).
		Set("updated_at", now).
		Where(sq.Expr("lower(name) = lower(?)", name)).
		ToSql()
}

func markFuzzyQuery(column, name string, now time.Time) (string, []any, error) {
	return psql().Update(villageTableName).
		Set(column, true).
		Set("updated_at", now).
		Where(sq.ILike{"name": likePattern(name)}).
		ToSql()
}

// MarkVillages sets a flag on every village matching one of names. Each name
// is tried as a case-insensitive exact match first and falls back to a
// substring match; names matching nothing are reported back.
func (r *VillageRepository) MarkVillages(ctx context.Context, flag types.VillageFlag, names []string) (*types.MarkVillagesResult, error) {

	column, ok := flag.Column()
	if !ok {
		return nil, types.NewValidationError("invalid flag", map[string]string{"flag": "must be one of: needsHelp, mostEffected"})
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin mark villages transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result := &types.MarkVillagesResult{NotMatched: make([]string, 0)}
	now := time.Now()

	for _, raw := range names {
		name := utils.NormalizeSpace(raw)
		if name == "" {
			continue
		}

		matched := false
		for _, build := range []markQueryFunc{markExactQuery, markFuzzyQuery} {
			query, args, err := build(column, name, now)
			if err != nil {
				return nil, fmt.Errorf("failed to generate mark villages query: %w", err)
			}

			tag, err := tx.Exec(ctx, query, args...)
			if err != nil {
				return nil, fmt.Errorf("failed to mark villages: %w", err)
			}

			if tag.RowsAffected() > 0 {
				result.Updated += tag.RowsAffected()
				matched = true
				break
			}
		}

		if !matched {
			result.NotMatched = append(result.NotMatched, name)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit mark villages: %w", err)
	}

	return result, nil
}

// UpsertVillageByName inserts a village or refreshes its details when the name
// already exists. Used by the seeder.
func (r *VillageRepository) UpsertVillageByName(ctx context.Context, village *types.Village) error {

	now := time.Now()
	village.ID = utils.NanoID()
	village.CreatedAt = now
	village.UpdatedAt = now

	query, args, err := psql().Insert(villageTableName).
		SetMap(utils.StructToMap(village)).
		Suffix("ON CONFLICT (name) DO UPDATE SET district = COALESCE(EXCLUDED.district, villages.district), updated_at = EXCLUDED.updated_at RETURNING " + strings.Join(villageColumns, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert village query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, village, query, args...)
	if err != nil {
		return translateError(err, "failed to upsert village", nil)
	}

	return nil
}
