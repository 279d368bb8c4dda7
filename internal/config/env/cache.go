package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type cacheEnv struct {
	TTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
}

type cacheCfg struct {
	raw cacheEnv
}

func NewCacheConfig() (*cacheCfg, error) {
	var raw cacheEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &cacheCfg{raw: raw}, nil
}

func (cfg *cacheCfg) TTL() time.Duration { return cfg.raw.TTL }
