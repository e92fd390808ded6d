package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/globalvillage.db"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	CountriesURL   string        `env:"COUNTRIES_URL" envDefault:"https://restcountries.com/v3.1"`
	UpstreamRPS    int           `env:"UPSTREAM_RPS" envDefault:"2"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	RedisURL       string        `env:"REDIS_URL"`
	EnrichmentPath string        `env:"ENRICHMENT_PATH"`
	SiteDir        string        `env:"SITE_DIR" envDefault:"../web/dist"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
