package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Cascade CascadeConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// CascadeConfig makes the store-layer delete cascades explicit, separately
// toggleable policies instead of implicit mapping side effects. The
// role→users cascade in particular deletes every account holding a role;
// it defaults on to preserve the reference behavior but is flagged for
// product-owner confirmation (see DESIGN.md).
type CascadeConfig struct {
	RoleDeletesUsers    bool `env:"CASCADE_ROLE_DELETES_USERS,    default=true"`
	UserDeletesProducts bool `env:"CASCADE_USER_DELETES_PRODUCTS, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
