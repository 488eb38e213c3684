// Package item implements the sorted key-value store on PostgreSQL.
// Every record is one row of the items table keyed by (pk, sk) with its
// attributes in a JSONB column. Atomic updates are single statements that
// compute the new document inside the database.
package item

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/math-s/yeargoals/internal/adapter/postgres"
	"github.com/math-s/yeargoals/internal/domain"
	"github.com/math-s/yeargoals/internal/kv"
)

const (
	table     = "items"
	attrsExpr = table + ".attrs"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// row is the scan target for every read.
type row struct {
	PK    string `db:"pk"`
	SK    string `db:"sk"`
	Attrs []byte `db:"attrs"`
}

// Store provides item persistence backed by PostgreSQL.
type Store struct {
	q   postgres.Querier
	log *slog.Logger
}

// New creates a new item store.
func New(q postgres.Querier, logger *slog.Logger) *Store {
	return &Store{q: q, log: logger.With("adapter", "postgres.item")}
}

// Ping checks database reachability (used by readiness probes).
func (s *Store) Ping(ctx context.Context) error {
	return s.q.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the item stored under key.
// Returns domain.ErrNotFound if there is none.
func (s *Store) Get(ctx context.Context, key kv.Key) (kv.Item, error) {
	query, args, err := psql.
		Select("pk", "sk", "attrs").
		From(table).
		Where(sq.Eq{"pk": key.PK, "sk": key.SK}).
		ToSql()
	if err != nil {
		return kv.Item{}, fmt.Errorf("build get: %w", err)
	}

	var r row
	if err := pgxscan.Get(ctx, s.q, &r, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return kv.Item{}, fmt.Errorf("get %s: %w", keyString(key), domain.ErrNotFound)
		}
		return kv.Item{}, postgres.MapError(err, "get", keyString(key))
	}
	return toItem(r)
}

// Query runs a prefix range scan inside one partition.
func (s *Store) Query(ctx context.Context, q kv.Query) ([]kv.Item, error) {
	order := "sk ASC"
	if q.Order == kv.Descending {
		order = "sk DESC"
	}

	b := psql.
		Select("pk", "sk", "attrs").
		From(table).
		Where(sq.Eq{"pk": q.PK}).
		Where(`sk LIKE ? ESCAPE '\'`, escapeLike(q.Prefix)+"%").
		OrderBy(order)
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "query", q.PK+"/"+q.Prefix)
	}

	items := make([]kv.Item, 0, len(rows))
	for _, r := range rows {
		it, err := toItem(r)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Put inserts the item or overwrites the stored attributes.
func (s *Store) Put(ctx context.Context, it kv.Item) error {
	doc, err := encodeAttrs(it.Attrs)
	if err != nil {
		return err
	}

	query, args, err := psql.
		Insert(table).
		Columns("pk", "sk", "attrs").
		Values(it.PK, it.SK, sq.Expr("?::jsonb", doc)).
		Suffix("ON CONFLICT (pk, sk) DO UPDATE SET attrs = EXCLUDED.attrs").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "put", keyString(it.Key))
	}
	return nil
}

// Update applies u in one statement and returns the resulting item. Without
// MustExist the statement is an upsert whose insert branch carries the
// merged attributes; with MustExist it is a plain UPDATE and a missing row
// yields domain.ErrNotFound.
func (s *Store) Update(ctx context.Context, u kv.Update) (kv.Item, error) {
	expr, exprArgs, err := mergeExpr(attrsExpr, u)
	if err != nil {
		return kv.Item{}, err
	}

	var b sq.Sqlizer
	if u.MustExist {
		b = psql.
			Update(table).
			Set("attrs", sq.Expr(expr, exprArgs...)).
			Where(sq.Eq{"pk": u.PK, "sk": u.SK}).
			Suffix("RETURNING pk, sk, attrs")
	} else {
		doc, err := encodeAttrs(u.Merge(nil))
		if err != nil {
			return kv.Item{}, err
		}
		b = psql.
			Insert(table).
			Columns("pk", "sk", "attrs").
			Values(u.PK, u.SK, sq.Expr("?::jsonb", doc)).
			Suffix("ON CONFLICT (pk, sk) DO UPDATE SET attrs = "+expr+" RETURNING pk, sk, attrs", exprArgs...)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return kv.Item{}, fmt.Errorf("build update: %w", err)
	}

	var r row
	if err := pgxscan.Get(ctx, s.q, &r, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return kv.Item{}, fmt.Errorf("update %s: %w", keyString(u.Key), domain.ErrNotFound)
		}
		return kv.Item{}, postgres.MapError(err, "update", keyString(u.Key))
	}
	return toItem(r)
}

// Delete removes the item. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key kv.Key) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"pk": key.PK, "sk": key.SK}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "delete", keyString(key))
	}
	s.log.DebugContext(ctx, "item deleted",
		slog.String("sk", key.SK),
		slog.Int64("rows", tag.RowsAffected()),
	)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mergeExpr renders the JSONB expression applying u on top of col:
//
//	((defaults || col) || set) || {field: coalesce(col.field, 0) + delta} ...
//
// Field names travel as parameters. Add fields are emitted in sorted order
// so the statement text is stable.
func mergeExpr(col string, u kv.Update) (string, []any, error) {
	expr := col
	var args []any

	if len(u.SetIfAbsent) > 0 {
		doc, err := encodeAttrs(u.SetIfAbsent)
		if err != nil {
			return "", nil, err
		}
		expr = "(?::jsonb || " + expr + ")"
		args = append(args, doc)
	}
	if len(u.Set) > 0 {
		doc, err := encodeAttrs(u.Set)
		if err != nil {
			return "", nil, err
		}
		expr = "(" + expr + " || ?::jsonb)"
		args = append(args, doc)
	}

	fields := make([]string, 0, len(u.Add))
	for f := range u.Add {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		expr = "(" + expr + " || jsonb_build_object(?::text, COALESCE((" + col + "->>?::text)::numeric, 0) + ?::numeric))"
		args = append(args, f, f, u.Add[f])
	}

	return expr, args, nil
}

func encodeAttrs(attrs map[string]any) (string, error) {
	if attrs == nil {
		return "{}", nil
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode attrs: %w", err)
	}
	return string(b), nil
}

func toItem(r row) (kv.Item, error) {
	attrs, err := kv.DecodeAttrs(r.Attrs)
	if err != nil {
		return kv.Item{}, fmt.Errorf("item %s/%s: %w", r.PK, r.SK, err)
	}
	return kv.Item{Key: kv.Key{PK: r.PK, SK: r.SK}, Attrs: attrs}, nil
}

// escapeLike escapes LIKE metacharacters so the prefix matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func keyString(k kv.Key) string {
	return k.PK + "/" + k.SK
}
