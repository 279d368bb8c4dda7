package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/stackrow/warehouse/internal/slotting"
)

type allocatorEnv struct {
	// Score multipliers; policy knobs, not correctness requirements.
	UtilizationWeight float64 `env:"ALLOCATOR_UTILIZATION_WEIGHT" envDefault:"2"`
	HeightWeight      float64 `env:"ALLOCATOR_HEIGHT_WEIGHT" envDefault:"3"`

	// How long an unconfirmed quantity proposal stays open.
	ProposalTTL time.Duration `env:"KANBAN_PROPOSAL_TTL" envDefault:"5m"`
}

type allocator struct {
	raw allocatorEnv
}

func NewAllocatorConfig() (*allocator, error) {
	var raw allocatorEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &allocator{raw: raw}, nil
}

func (cfg *allocator) Weights() slotting.Weights {
	return slotting.Weights{
		Utilization: cfg.raw.UtilizationWeight,
		Height:      cfg.raw.HeightWeight,
	}
}

func (cfg *allocator) ProposalTTL() time.Duration { return cfg.raw.ProposalTTL }
