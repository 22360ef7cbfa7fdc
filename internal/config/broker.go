package config

import (
	"os"
	"sync"
)

type BrokerConfig struct {
	URL      string
	Exchange string
}

var (
	brokerConfig *BrokerConfig
	brokerOnce   sync.Once
)

func LoadBrokerConfig() *BrokerConfig {
	brokerOnce.Do(func() {
		exchange := os.Getenv("RABBITMQ_EXCHANGE")
		if exchange == "" {
			exchange = "skillsync.events"
		}
		brokerConfig = &BrokerConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: exchange,
		}
	})
	return brokerConfig
}

func (c *BrokerConfig) Enabled() bool {
	return c.URL != ""
}
