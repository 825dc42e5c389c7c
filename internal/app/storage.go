package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-todo-widget/internal/config"
	"github.com/adanyl0v/go-todo-widget/internal/storage"
)

var (
	globalStorage    storage.KeyValue
	globalDisconnect = func() {}
)

func Storage() storage.KeyValue {
	return globalStorage
}

// MustConnectStorage opens the key-value backend selected by
// STORAGE_DRIVER.
func MustConnectStorage() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		globalStorage = storage.NewMemory(cfg.Storage.QuotaBytes)
	case config.StoragePostgres:
		mustConnectPostgres()
	case config.StorageSQLite:
		mustOpenSQL(storage.SQLite, cfg.SQLite.Path)
	case config.StorageMySQL:
		mustOpenSQL(storage.MySQL, cfg.MySQL.DSN)
	default:
		globalLogger.Error().
			Str("driver", cfg.Storage.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver))
	}
	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("connected storage")
}

func DisconnectStorage() {
	globalDisconnect()
	globalLogger.Info().Msg("disconnected storage")
}

func mustConnectPostgres() {
	cfg := config.Global().Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = pool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")

	pg := storage.NewPostgres(globalLogger, pool)
	if err = pg.Migrate(ctx); err != nil {
		panic(err)
	}
	globalStorage = pg
	globalDisconnect = pool.Close
}

func mustOpenSQL(dialect storage.Dialect, dsn string) {
	db, err := storage.OpenSQL(context.Background(), globalLogger, dialect, dsn)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", dialect.Driver).
			Msg("failed to open sql storage")
		panic(err)
	}
	globalStorage = db
	globalDisconnect = func() { _ = db.Close() }
}
