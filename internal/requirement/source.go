// internal/requirement/source.go
//
// Requirement sources.
//
// Context
// -------
// Requirements live in a relational catalog.  Two deployments exist: one
// behind a MySQL-protocol server reached through sqlx, one on Postgres
// reached through a pgx pool.  Both return the same Row shape, so the
// registry and validator depend only on Source.
//
// Workflow
// --------
//  1. Fetch runs exactly one parameterised SELECT for the version.
//  2. Every column is lower-cased in SQL.
//  3. Any driver failure becomes a SetupError of kind ErrConnection; an
//     empty result becomes kind ErrNoData.
//
// Notes
// -----
//   - Column list matches the fields in Row; update both together.
//   - Sources never log; the registry logs with version context.
package requirement

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
)

// Source fetches the complete requirement row set for one schema version.
type Source interface {
	Fetch(ctx context.Context, version int) ([]Row, error)
}

// selectRequirements is written with `?` placeholders and rebound per
// driver.  Rows are ordered so Build sees a stable sequence.
const selectRequirements = `
        SELECT LOWER(t.name)                 AS tab,
               LOWER(i.name)                 AS impairment,
               LOWER(f.name)                 AS feature,
               LOWER(ft.name)                AS feature_type,
               LOWER(COALESCE(vt.name, ''))  AS value_type,
               LOWER(so.name)                AS select_option,
               fi.code                       AS code
        FROM   feature_impairment fi
        JOIN   requirement_version v ON v.id  = fi.version_id
        JOIN   tab t                 ON t.id  = fi.tab_id
        JOIN   feature f             ON f.id  = fi.feature_id
        JOIN   impairment i          ON i.id  = fi.impairment_id
        JOIN   feature_type ft       ON ft.id = fi.feature_type_id
        LEFT JOIN value_type vt      ON vt.id = fi.value_type_id
        LEFT JOIN select_option so   ON so.feature_impairment_id = fi.id
        WHERE  v.number = ?
        ORDER  BY fi.id, so.id`

//
// sqlx source
//

// SQLSource reads requirements through database/sql via sqlx.
type SQLSource struct {
	db *sqlx.DB
}

// NewSQLSource wraps an open pool.  The caller owns db.
func NewSQLSource(db *sqlx.DB) *SQLSource { return &SQLSource{db: db} }

// Fetch implements Source.
func (s *SQLSource) Fetch(ctx context.Context, version int) ([]Row, error) {
	rows := make([]Row, 0, 256)
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(selectRequirements), version); err != nil {
		return nil, connection(version, err)
	}
	if len(rows) == 0 {
		return nil, noData(version)
	}
	return rows, nil
}

//
// pgx source
//

// pgQuerier is the slice of *pgxpool.Pool that PGSource needs.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGSource reads requirements through a pgx pool.
type PGSource struct {
	pool pgQuerier
}

// NewPGSource wraps a *pgxpool.Pool (or anything with its Query method).
func NewPGSource(pool pgQuerier) *PGSource { return &PGSource{pool: pool} }

// Fetch implements Source.
func (s *PGSource) Fetch(ctx context.Context, version int) ([]Row, error) {
	q := sqlx.Rebind(sqlx.DOLLAR, selectRequirements)
	res, err := s.pool.Query(ctx, q, version)
	if err != nil {
		return nil, connection(version, err)
	}
	rows, err := pgx.CollectRows(res, pgx.RowToStructByName[Row])
	if err != nil {
		return nil, connection(version, err)
	}
	if len(rows) == 0 {
		return nil, noData(version)
	}
	return rows, nil
}

//
// timeout decorator
//

type timeoutSource struct {
	src Source
	d   time.Duration
}

// WithTimeout bounds every Fetch on src by d.  A non-positive d returns
// src unchanged.
func WithTimeout(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return &timeoutSource{src: src, d: d}
}

// Fetch implements Source.
func (t *timeoutSource) Fetch(ctx context.Context, version int) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.src.Fetch(ctx, version)
}
