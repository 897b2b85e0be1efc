package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uprala/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// translateError maps driver errors onto the shared sentinels. notFound is
// returned for pgx.ErrNoRows and may be nil when no-rows is not expected.
func translateError(err error, msg string, notFound error) error {
	if err == nil {
		return nil
	}

	if notFound != nil && (errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", types.ErrConflict, conflictDetail(pgErr))
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: record is referenced by other records", types.ErrConflict)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}

func conflictDetail(pgErr *pgconn.PgError) string {
	switch {
	case strings.HasSuffix(pgErr.ConstraintName, "_name_key"):
		return "name already exists"
	case strings.HasSuffix(pgErr.ConstraintName, "_username_key"):
		return "username already exists"
	case strings.HasSuffix(pgErr.ConstraintName, "_key_key"):
		return "key already exists"
	}
	return "duplicate record"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// likePattern wraps a free-text search term for ILIKE, escaping wildcards.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

func searchWhere(q string, columns ...string) sq.Sqlizer {
	pattern := likePattern(q)
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pattern})
	}
	return or
}

func selectByIDs[T any](ctx context.Context, q querier, table string, columns []string, ids []string) ([]*T, error) {
	out := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := psql().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s by ids query: %w", table, err)
	}

	if err := pgxscan.Select(ctx, q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch %s by ids: %w", table, err)
	}

	return out, nil
}

// uniqueIDs returns the distinct non-empty ids in first-seen order.
func uniqueIDs(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
