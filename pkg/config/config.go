// Package config loads process configuration from the environment (and an
// optional .env file), mirroring the teacher services' convention.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the top-level configuration for the engine process: the
// instrument traded plus its Kafka and Redis collaborators.
type Config struct {
	Pair        string            `env:"PAIR,required"`
	KafkaConfig KafkaConfig       `envPrefix:"KAFKA_"`
	RedisConfig RedisConfig       `envPrefix:"REDIS_"`
	Snapshot    SnapshotConfig    `envPrefix:"SNAPSHOT_"`
}

// KafkaConfig configures the order-ingestion consumer and the
// trade-publication producer.
type KafkaConfig struct {
	Brokers      []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	OrderTopic   string   `env:"ORDER_TOPIC" envDefault:"orders"`
	TradeTopic   string   `env:"TRADE_TOPIC" envDefault:"trades"`
	GroupID      string   `env:"GROUP_ID" envDefault:"matchcore"`
}

// RedisConfig configures the snapshot store.
type RedisConfig struct {
	Addrs    []string `env:"ADDRS" envSeparator:"," envDefault:"localhost:6379"`
	Password string   `env:"PASSWORD"`
	Username string   `env:"USERNAME"`
	DB       int      `env:"DB" envDefault:"0"`
}

// SnapshotConfig holds checkpoint interval settings. They are parsed but not
// read by any component: cmd/engine stores a snapshot only at shutdown, not
// periodically.
type SnapshotConfig struct {
	IntervalSeconds int   `env:"INTERVAL_SECONDS" envDefault:"30"`
	OffsetDelta     int64 `env:"OFFSET_DELTA" envDefault:"1000"`
}

// MustLoad parses environment variables (after loading .env, if present)
// into cfg, panicking on failure. It mirrors the teacher's pattern of
// failing fast at process startup rather than running with a partial
// configuration.
func MustLoad[T any](cfg T) T {
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load parses environment variables into cfg, returning any error instead
// of panicking.
func Load[T any](cfg T) error {
	_ = godotenv.Load()
	return env.Parse(cfg)
}
