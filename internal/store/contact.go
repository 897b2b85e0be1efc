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

const contactTableName = "uprala.contacts"

var contactColumns = utils.StructTagValues(types.Contact{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) ContactsByVillage(ctx context.Context, villageID string, filter *types.ContactFilter) ([]*types.Contact, error) {

	query := psql().Select(contactColumns...).From(contactTableName).
		Where(sq.Eq{"village_id": villageID}).
		OrderBy("created_at asc")
	if filter != nil && filter.Role != "" {
		query = query.Where(sq.Eq{"role": filter.Role})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contacts query: %w", err)
	}

	var contacts = make([]*types.Contact, 0)
	err = pgxscan.Select(ctx, r.pool, &contacts, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	return contacts, nil
}

func contactsByVillageIDs(ctx context.Context, q querier, villageIDs []string) ([]*types.Contact, error) {
	var contacts = make([]*types.Contact, 0)
	if len(villageIDs) == 0 {
		return contacts, nil
	}

	query, args, err := psql().Select(contactColumns...).From(contactTableName).
		Where(sq.Eq{"village_id": villageIDs}).
		OrderBy("created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate village contacts query: %w", err)
	}

	err = pgxscan.Select(ctx, q, &contacts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch village contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) Contact(ctx context.Context, contactID string) (*types.Contact, error) {

	query, args, err := psql().Select(contactColumns...).From(contactTableName).
		Where(sq.Eq{"id": contactID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact query: %w", err)
	}

	var contact = new(types.Contact)
	err = pgxscan.Get(ctx, r.pool, contact, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch contact", types.ErrContactNotFound)
	}

	return contact, nil
}

func (r *ContactRepository) CreateContact(ctx context.Context, contact *types.Contact) error {

	now := time.Now()
	contact.ID = utils.NanoID()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.Role == "" {
		contact.Role = types.ContactRolePatwari
	}

	query, args, err := psql().Insert(contactTableName).SetMap(utils.StructToMap(contact)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert contact query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return types.ErrVillageNotFound
		}
		return translateError(err, "failed to insert contact", nil)
	}

	return nil
}

func (r *ContactRepository) UpdateContact(ctx context.Context, contactID string, patch *types.ContactPatch) (*types.Contact, error) {

	fields := utils.PatchToMap(patch)
	if len(fields) == 0 {
		return r.Contact(ctx, contactID)
	}
	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(contactTableName).
		SetMap(fields).
		Where(sq.Eq{"id": contactID}).
		Suffix("RETURNING " + strings.Join(contactColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update contact query: %w", err)
	}

	var contact = new(types.Contact)
	err = pgxscan.Get(ctx, r.pool, contact, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to update contact", types.ErrContactNotFound)
	}

	return contact, nil
}

func (r *ContactRepository) DeleteContact(ctx context.Context, contactID string) error {

	query, args, err := psql().Delete(contactTableName).Where(sq.Eq{"id": contactID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete contact query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, "failed to delete contact", nil)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrContactNotFound
	}

	return nil
}
