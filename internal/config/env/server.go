package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type serverEnv struct {
	Host string `env:"HTTP_HOST,required"`
	Port int    `env:"HTTP_PORT,required"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	DBReadTimeout   time.Duration `env:"DB_READ_TIMEOUT,required"`
}

type server struct {
	raw serverEnv
}

func NewServerConfig() (*server, error) {
	var raw serverEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &server{raw: raw}, nil
}

func (cfg *server) Host() string { return cfg.raw.Host }
func (cfg *server) Port() int    { return cfg.raw.Port }
func (cfg *server) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host(), cfg.Port())
}

func (cfg *server) ReadTimeout() time.Duration     { return cfg.raw.ReadTimeout }
func (cfg *server) ShutdownTimeout() time.Duration { return cfg.raw.ShutdownTimeout }
func (cfg *server) DBReadTimeout() time.Duration   { return cfg.raw.DBReadTimeout }
