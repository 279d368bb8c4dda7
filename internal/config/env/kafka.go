package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers             []string `env:"KAFKA_BROKERS,required"`
	StockAlertTopicName string   `env:"STOCK_ALERT_TOPIC_NAME,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string       { return cfg.raw.Brokers }
func (cfg *kafka) StockAlertTopic() string { return cfg.raw.StockAlertTopicName }

func (cfg *kafka) ProducerConfig() *sarama.Config {
	c := sarama.NewConfig()
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 5
	c.Producer.Return.Successes = true
	return c
}
