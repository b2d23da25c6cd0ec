package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("invalid config")

// Source kinds for the event log and the user registry.
const (
	SourceFile       = "file"
	SourceClickHouse = "clickhouse"
	SourceKafka      = "kafka"
	SourcePostgres   = "postgres"
	SourceRedis      = "redis"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Events     EventsConfig     `yaml:"events"`
	Users      UsersConfig      `yaml:"users"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Output     OutputConfig     `yaml:"output"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
}

type EventsConfig struct {
	Source string `yaml:"source"`
	File   string `yaml:"file"`
}

type UsersConfig struct {
	Source string `yaml:"source"`
	File   string `yaml:"file"`
}

type AnalysisConfig struct {
	Labels    LabelsConfig `yaml:"labels"`
	TopEvents int          `yaml:"top_events"`
}

// LabelsConfig names the event labels that drive the funnels.
type LabelsConfig struct {
	HomePage  string `yaml:"home_page"`
	Purchase  string `yaml:"purchase"`
	BlogPost  string `yaml:"blog_post"`
	AddToCart string `yaml:"add_to_cart"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type ClickHouseConfig struct {
	Addr         string `yaml:"addr"`
	Database     string `yaml:"database"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Table        string `yaml:"table"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type KafkaConfig struct {
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	Partition int      `yaml:"partition"`
	// IdleTimeout ends a snapshot early when the tail offsets never arrive
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Events.Source == "" {
		cfg.Events.Source = SourceFile
	}
	if cfg.Events.File == "" {
		cfg.Events.File = "data/events.json"
	}
	if cfg.Users.Source == "" {
		cfg.Users.Source = SourceFile
	}
	if cfg.Users.File == "" {
		cfg.Users.File = "data/users.json"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}

	// Set analysis defaults
	if cfg.Analysis.Labels.HomePage == "" {
		cfg.Analysis.Labels.HomePage = "Visited home page"
	}
	if cfg.Analysis.Labels.Purchase == "" {
		cfg.Analysis.Labels.Purchase = "Purchased items in cart"
	}
	if cfg.Analysis.Labels.BlogPost == "" {
		cfg.Analysis.Labels.BlogPost = "Visited blog post"
	}
	if cfg.Analysis.Labels.AddToCart == "" {
		cfg.Analysis.Labels.AddToCart = "Added item to cart"
	}
	if cfg.Analysis.TopEvents == 0 {
		cfg.Analysis.TopEvents = 3
	}

	// Set storage defaults
	if cfg.ClickHouse.Table == "" {
		cfg.ClickHouse.Table = "events"
	}
	if cfg.ClickHouse.MaxOpenConns == 0 {
		cfg.ClickHouse.MaxOpenConns = 10
	}
	if cfg.ClickHouse.MaxIdleConns == 0 {
		cfg.ClickHouse.MaxIdleConns = 5
	}
	if cfg.Postgres.Table == "" {
		cfg.Postgres.Table = "users"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "user:"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "analytics.events"
	}
	if cfg.Kafka.IdleTimeout == 0 {
		cfg.Kafka.IdleTimeout = 5 * time.Second
	}
}

// Validate checks that the selected sources are known and configured.
func (c *Config) Validate() error {
	switch c.Events.Source {
	case SourceFile:
	case SourceClickHouse:
		if c.ClickHouse.Addr == "" {
			return fmt.Errorf("%w: clickhouse.addr is required for events source %q", ErrInvalid, c.Events.Source)
		}
	case SourceKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("%w: kafka.brokers is required for events source %q", ErrInvalid, c.Events.Source)
		}
		for i, broker := range c.Kafka.Brokers {
			if strings.TrimSpace(broker) == "" {
				return fmt.Errorf("%w: kafka.brokers[%d] is empty", ErrInvalid, i)
			}
		}
		if c.Kafka.IdleTimeout < 0 {
			return fmt.Errorf("%w: kafka.idle_timeout must not be negative", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown events source %q", ErrInvalid, c.Events.Source)
	}

	switch c.Users.Source {
	case SourceFile:
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("%w: postgres.dsn is required for users source %q", ErrInvalid, c.Users.Source)
		}
	case SourceRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for users source %q", ErrInvalid, c.Users.Source)
		}
	default:
		return fmt.Errorf("%w: unknown users source %q", ErrInvalid, c.Users.Source)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalid, c.Output.Format)
	}

	if c.Analysis.TopEvents < 0 {
		return fmt.Errorf("%w: analysis.top_events must not be negative", ErrInvalid)
	}

	labels := c.Analysis.Labels
	if labels.HomePage == labels.Purchase {
		return fmt.Errorf("%w: home_page and purchase labels must differ", ErrInvalid)
	}
	if labels.BlogPost == labels.AddToCart || labels.AddToCart == labels.Purchase {
		return fmt.Errorf("%w: funnel path labels must differ", ErrInvalid)
	}

	return nil
}
