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

const adminUserTableName = "uprala.admin_users"

var adminUserColumns = utils.StructTagValues(types.AdminUser{})

type AdminUserRepository struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

func (r *AdminUserRepository) AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error) {

	query, args, err := psql().Select(adminUserColumns...).From(adminUserTableName).
		Where(sq.Expr("lower(username) = lower(?)", strings.TrimSpace(username))).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin user query: %w", err)
	}

	var user = new(types.AdminUser)
	err = pgxscan.Get(ctx, r.pool, user, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch admin user", types.ErrAdminUserNotFound)
	}

	return user, nil
}

// UpsertAdmin creates the admin or resets the password hash of an existing one.
func (r *AdminUserRepository) UpsertAdmin(ctx context.Context, username, passwordHash string) (*types.AdminUser, error) {

	now := time.Now()
	user := &types.AdminUser{
		ID:        utils.NanoID(),
		Username:  strings.TrimSpace(username),
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := psql().Insert(adminUserTableName).
		SetMap(utils.StructToMap(user)).
		Suffix("ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at RETURNING " + strings.Join(adminUserColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upsert admin query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, user, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to upsert admin user", nil)
	}

	return user, nil
}
