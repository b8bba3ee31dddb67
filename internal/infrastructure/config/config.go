package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Mapbox     MapboxConfig
	Dispatcher DispatcherConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=booking_marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MapboxConfig holds the reverse-geocoding endpoint settings. The token is
// injected here rather than read from any ambient storage; an empty token
// disables geocoding and the acquisition path falls back to coordinates.
type MapboxConfig struct {
	Token   string `env:"MAPBOX_TOKEN"`
	BaseURL string `env:"MAPBOX_BASE_URL, default=https://api.mapbox.com"`
}

type DispatcherConfig struct {
	Workers int `env:"DISPATCHER_WORKERS, default=8"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
