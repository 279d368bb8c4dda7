package config

import (
	"time"

	"github.com/IBM/sarama"

	"github.com/stackrow/warehouse/internal/slotting"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	DatabaseName() string
	LocationsCollection() string
	ItemsCollection() string
	CategoriesCollection() string
	MovementsCollection() string
	DSN() string
}

type Kafka interface {
	Brokers() []string
	StockAlertTopic() string
	ProducerConfig() *sarama.Config
}

type Cache interface {
	TTL() time.Duration
}

type Allocator interface {
	Weights() slotting.Weights
	ProposalTTL() time.Duration
}
