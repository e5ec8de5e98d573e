package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/libman-service/internal/server"
	"github.com/Astemirdum/libman-service/pkg/auth"
	"github.com/Astemirdum/libman-service/pkg/logger"
	"github.com/Astemirdum/libman-service/pkg/mongodb"
)

type Config struct {
	Server server.Config  `yaml:"server"`
	Mongo  mongodb.Config `yaml:"mongo"`
	JWT    auth.Config    `yaml:"jwt"`
	Log    logger.Log     `yaml:"log"`
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
