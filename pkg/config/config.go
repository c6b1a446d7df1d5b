// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"time"
)

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fx]"`
}

// Cache tunes the rate cache. Capacity bounds the in-memory cache;
// RedisURL, when set, switches to the Redis-backed cache for multi-process
// deployments.
type Cache struct {
	Capacity int           `envconfig:"CAPACITY" default:"200"`
	TTL      time.Duration `envconfig:"TTL" default:"1h"`
	RedisURL string        `envconfig:"REDIS_URL"`
	Prefix   string        `envconfig:"PREFIX" default:"fx:rate:"`
}

// Provider configures the upstream exchange-rate API client.
type Provider struct {
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:"https://v6.exchangerate-api.com/v6"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type DB struct {
	Url string `envconfig:"URL"`
}

type App struct {
	Env      string    `envconfig:"ENV" default:"development"`
	Server   *Server   `envconfig:"SERVER"`
	Log      *Log      `envconfig:"LOG"`
	Cache    *Cache    `envconfig:"CACHE"`
	Provider *Provider `envconfig:"PROVIDER"`
	DB       *DB       `envconfig:"DATABASE"`
}
