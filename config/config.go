package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	redis_wrapper "github.com/joripage/limit-orderbook/pkg/infra/redis"
	"github.com/joripage/limit-orderbook/pkg/logging"
)

var ErrInvalidConfig = errors.New("invalid config")

type AppConfig struct {
	ServiceName string       `yaml:"service_name"`
	LogLevel    string       `yaml:"log_level"`
	Book        BookConfig   `yaml:"book"`
	Kafka       *KafkaConfig `yaml:"kafka"`
	Redis       *DepthConfig `yaml:"redis"`
}

type BookConfig struct {
	Symbol     string `yaml:"symbol"`
	PriceScale int32  `yaml:"price_scale"` // fractional digits, 2 means prices are in cents
}

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	Topic          string   `yaml:"topic"`
	MaxRetries     uint64   `yaml:"max_retries"`
	BatchTimeoutMs int      `yaml:"batch_timeout_ms"`
}

type DepthConfig struct {
	redis_wrapper.RedisConfig `yaml:",inline"`
	KeyPrefix                 string `yaml:"key_prefix"`
	TTLSeconds                int    `yaml:"ttl_seconds"`
	DepthLevels               int    `yaml:"depth_levels"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}

	cfg, err := Parse(configBytes)
	if err != nil {
		sugar.Errorf("Failed to parse config file: %v", err)
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)
	return cfg, nil
}

// Parse expands environment variables in data, decodes it, fills defaults
// and validates the result.
func Parse(data []byte) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills defaults and checks required fields.
func (c *AppConfig) Validate() error {
	if c.ServiceName == "" {
		c.ServiceName = "limit-orderbook"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Book.Symbol == "" {
		return fmt.Errorf("%w: book.symbol is required", ErrInvalidConfig)
	}
	if c.Book.PriceScale < 0 || c.Book.PriceScale > 18 {
		return fmt.Errorf("%w: book.price_scale %d out of range [0, 18]", ErrInvalidConfig, c.Book.PriceScale)
	}

	if k := c.Kafka; k != nil {
		if len(k.Brokers) == 0 {
			return fmt.Errorf("%w: kafka.brokers is required", ErrInvalidConfig)
		}
		if k.Topic == "" {
			k.Topic = "trades"
		}
		if k.MaxRetries == 0 {
			k.MaxRetries = 3
		}
		if k.BatchTimeoutMs <= 0 {
			k.BatchTimeoutMs = 10
		}
	}

	if r := c.Redis; r != nil {
		if r.ConnectionURL == "" {
			return fmt.Errorf("%w: redis.connection_url is required", ErrInvalidConfig)
		}
		if r.KeyPrefix == "" {
			r.KeyPrefix = "orderbook:depth:"
		}
		if r.TTLSeconds < 0 {
			return fmt.Errorf("%w: redis.ttl_seconds must not be negative", ErrInvalidConfig)
		}
		if r.DepthLevels <= 0 {
			r.DepthLevels = 10
		}
	}
	return nil
}

func (c *AppConfig) Level() logging.LogLevel {
	lvl, _ := logging.ParseLevel(c.LogLevel)
	return lvl
}
