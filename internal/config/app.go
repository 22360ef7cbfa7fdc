package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	RateLimitMax int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		name := os.Getenv("APP_NAME")
		if name == "" {
			name = "SkillSync API"
		}
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8000"
		}
		rateLimit, _ := strconv.Atoi(os.Getenv("RATE_LIMIT_MAX"))
		appConfig = &AppConfig{
			Name:         name,
			Env:          env,
			Port:         port,
			BaseURL:      os.Getenv("APP_URL"),
			RateLimitMax: rateLimit,
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
