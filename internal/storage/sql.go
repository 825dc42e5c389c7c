package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Dialect holds the statements that differ between SQL drivers.
type Dialect struct {
	Driver      string
	createTable string
	upsert      string
}

var (
	SQLite = Dialect{
		Driver: "sqlite3",
		createTable: `CREATE TABLE IF NOT EXISTS kv_slots (
    slot_key   TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
		upsert: `INSERT INTO kv_slots (slot_key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE
SET value = excluded.value,
    updated_at = excluded.updated_at`,
	}

	MySQL = Dialect{
		Driver: "mysql",
		createTable: `CREATE TABLE IF NOT EXISTS kv_slots (
    slot_key   VARCHAR(255) PRIMARY KEY,
    value      LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
		upsert: `INSERT INTO kv_slots (slot_key, value, updated_at)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
    value = VALUES(value),
    updated_at = VALUES(updated_at)`,
	}
)

// MySQL server error numbers for a full table and a full disk.
const (
	mysqlErrRecordFileFull = 1114
	mysqlErrDiskFull       = 1021
)

// SQL stores slots in a database/sql backend.
type SQL struct {
	logger  zerolog.Logger
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens dsn with the dialect's driver, pings it and creates
// the slots table.
func OpenSQL(ctx context.Context, logger zerolog.Logger, dialect Dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect.Driver, err)
	}
	if dialect.Driver == SQLite.Driver {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect.Driver, err)
	}

	s := &SQL{logger: logger, db: db, dialect: dialect}
	if _, err = db.ExecContext(ctx, dialect.createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv_slots table: %w", err)
	}
	logger.Info().
		Str("driver", dialect.Driver).
		Msg("opened sql storage")
	return s, nil
}

func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_slots WHERE slot_key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to select slot")
		return "", err
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, time.Now().UTC())
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to upsert slot")
		if s.isQuotaError(err) {
			return errors.Join(ErrQuotaExceeded, err)
		}
		return err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("upserted slot")
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE slot_key = ?`, key)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to delete slot")
		return err
	}
	return nil
}

func (s *SQL) isQuotaError(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrFull
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrRecordFileFull || myErr.Number == mysqlErrDiskFull
	}
	return false
}
