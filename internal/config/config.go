package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMySQL    = "mysql"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-required:"true"`
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Session  SessionConfig  `yaml:"session"`
	Widget   WidgetConfig   `yaml:"widget"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Key    string `yaml:"key" env:"STORAGE_KEY" env-default:"todo-items"`
	// QuotaBytes limits the memory driver, 0 means unlimited.
	QuotaBytes int `yaml:"quota_bytes" env:"STORAGE_QUOTA_BYTES" env-default:"5242880"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"POSTGRES_USERNAME"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" env:"POSTGRES_DATABASE"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"todo.db"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn" env:"MYSQL_DSN" env-default:"root:root@tcp(127.0.0.1:3306)/todo?parseTime=true"`
}

type SessionConfig struct {
	Issuer      string        `yaml:"issuer" env:"SESSION_ISSUER" env-default:"go-todo-widget"`
	SigningKey  string        `yaml:"signing_key" env:"SESSION_SIGNING_KEY" env-required:"true"`
	TTL         time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"720h"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
}

type WidgetConfig struct {
	IDFormat string `yaml:"id_format" env:"WIDGET_ID_FORMAT" env-default:"uuid"`
}
