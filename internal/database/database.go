// Package database centralises connection helpers for the requirements
// catalog.  Two drivers are supported:
//
//	Open(ctx, dsn, opts)          – sqlx over go-sql-driver/mysql.
//	OpenPostgres(ctx, url, opts)  – pgx connection pool.
//
// Both helpers ping before returning so bootstrap fails fast, retrying the
// ping opts.Retries times with opts.RetryBackoff between attempts.  Callers
// own the returned pool and must Close it.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// Options tunes pool sizes and the bootstrap ping.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Retries         int
	RetryBackoff    time.Duration
}

// DefaultOptions suits a single validator process: 15 open, 5 idle, and a
// 30-minute connection lifetime.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    15,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		Retries:         2,
		RetryBackoff:    500 * time.Millisecond,
	}
}

// Open returns a *sqlx.DB on the mysql driver.
func Open(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := pingWithRetry(ctx, db.PingContext, opts); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres returns a pgx pool for databaseURL.
func OpenPostgres(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		cfg.MaxConns = int32(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 && opts.MaxIdleConns <= opts.MaxOpenConns {
		cfg.MinConns = int32(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pingWithRetry(ctx, pool.Ping, opts); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func pingWithRetry(ctx context.Context, ping func(context.Context) error, opts Options) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = ping(ctx); err == nil || attempt >= opts.Retries {
			return err
		}
		t := time.NewTimer(opts.RetryBackoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
