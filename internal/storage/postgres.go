package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Postgres struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewPostgres(logger zerolog.Logger, pgPool *pgxpool.Pool) *Postgres {
	return &Postgres{
		logger: logger,
		pgPool: pgPool,
	}
}

// Migrate creates the slots table if it does not exist yet.
func (s *Postgres) Migrate(ctx context.Context) error {
	const createSlotsQuery = `
CREATE TABLE IF NOT EXISTS kv_slots (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)
`
	_, err := s.pgPool.Exec(ctx, createSlotsQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create kv_slots table")
		return err
	}
	s.logger.Debug().Msg("migrated kv_slots table")
	return nil
}

func (s *Postgres) Get(ctx context.Context, key string) (string, error) {
	const selectSlotQuery = `
SELECT value
FROM kv_slots
WHERE key = $1
`
	var value string
	err := s.pgPool.QueryRow(
		ctx,
		selectSlotQuery,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().
				Str("key", key).
				Msg("slot not found")
			return "", ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to select slot")
		return "", err
	}
	s.logger.Debug().
		Str("key", key).
		Int("size", len(value)).
		Msg("selected slot")
	return value, nil
}

func (s *Postgres) Set(ctx context.Context, key, value string) error {
	const upsertSlotQuery = `
INSERT INTO kv_slots (key,
                      value,
                      updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.pgPool.Exec(
		ctx,
		upsertSlotQuery,
		key,
		value,
		time.Now(),
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to upsert slot")
		if isQuotaError(err) {
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

func (s *Postgres) Remove(ctx context.Context, key string) error {
	const deleteSlotQuery = `
DELETE FROM kv_slots
WHERE key = $1
`
	_, err := s.pgPool.Exec(ctx, deleteSlotQuery, key)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("key", key).
			Msg("failed to delete slot")
		return err
	}
	s.logger.Debug().
		Str("key", key).
		Msg("deleted slot")
	return nil
}

// isQuotaError reports whether err is a server-side resource
// exhaustion the caller should present as "storage full".
func isQuotaError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.DiskFull,
		pgerrcode.OutOfMemory,
		pgerrcode.ProgramLimitExceeded,
		pgerrcode.InsufficientResources:
		return true
	}
	return false
}
