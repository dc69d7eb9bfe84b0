package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config captures all process-level configuration so main stays lean.
// Protocol parameters are compile-time constants and intentionally absent.
type Config struct {
	Addr          string `envconfig:"LAUREL_ADDR" default:":8080"`
	OwnerAccount  string `envconfig:"LAUREL_OWNER_ACCOUNT" default:"laurel-deployer"`
	JWTSigningKey string `envconfig:"LAUREL_JWT_SIGNING_KEY" default:"dev-secret-change-in-production"`

	// Block height derivation for off-chain deployments: one block per
	// interval since genesis.
	GenesisUnix          int64 `envconfig:"LAUREL_GENESIS_UNIX" default:"1704067200"`
	BlockIntervalSeconds int   `envconfig:"LAUREL_BLOCK_INTERVAL_SECONDS" default:"600"`

	// Optional backing stores; in-memory defaults apply when unset.
	RedisURL    string `envconfig:"LAUREL_REDIS_URL"`
	PostgresDSN string `envconfig:"LAUREL_POSTGRES_DSN"`

	// Optional Kafka audit trail; in-memory sink applies when unset.
	KafkaBrokers    []string `envconfig:"LAUREL_KAFKA_BROKERS"`
	KafkaAuditTopic string   `envconfig:"LAUREL_KAFKA_AUDIT_TOPIC" default:"laurel.audit"`
	AuditBufferSize int      `envconfig:"LAUREL_AUDIT_BUFFER" default:"1024"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("laurel", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// BlockInterval returns the block interval as a duration.
func (c Config) BlockInterval() time.Duration {
	return time.Duration(c.BlockIntervalSeconds) * time.Second
}

// Genesis returns the genesis timestamp.
func (c Config) Genesis() time.Time {
	return time.Unix(c.GenesisUnix, 0)
}
