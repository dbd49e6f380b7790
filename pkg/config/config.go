// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Pipeline, Kafka, Redis, Postgres, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PipelineConfig holds the resolved inputs and outputs of the three pipeline
// stages. Command-line flags override these values at process entry.
type PipelineConfig struct {
	JSONLinesFile   string `yaml:"jsonlinesFile"`
	InputDirectory  string `yaml:"inputDirectory"`
	OutputDirectory string `yaml:"outputDirectory"`
	ModelFile       string `yaml:"modelFile"`
	TestPhrase      string `yaml:"testPhrase"`
	MaxRecords      int    `yaml:"maxRecords"`
	Source          string `yaml:"source"`
}

// KafkaConfig holds broker and topic settings for the optional Kafka record
// source used by the prepare stage.
type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	Topic         string   `yaml:"topic"`
	ConsumerGroup string   `yaml:"consumerGroup"`
}

// RedisConfig holds connection parameters for the optional prediction cache.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	PoolSize int           `yaml:"poolSize"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// PostgresConfig holds connection parameters for the optional training-run
// history store.
type PostgresConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server exposed while a
// pipeline operation runs.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Record source kinds accepted by PipelineConfig.Source.
const (
	SourceFile  = "file"
	SourceKafka = "kafka"
)

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns a Config with defaults matching a local,
// filesystem-only run.
func defaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			InputDirectory:  "mapping-assistant-prepare",
			OutputDirectory: "mapping-assistant-prepare",
			ModelFile:       "model.rma",
			MaxRecords:      10000,
			Source:          SourceFile,
		},
		Kafka: KafkaConfig{
			Brokers:       []string{"localhost:9092"},
			Topic:         "record-ingest",
			ConsumerGroup: "mapping-assistant-group",
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 10,
			CacheTTL: 5 * time.Minute,
		},
		Postgres: PostgresConfig{
			Enabled:         false,
			Host:            "localhost",
			Port:            5432,
			Database:        "mappingassistant",
			User:            "mappingassistant",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

func (c *Config) validate() error {
	switch c.Pipeline.Source {
	case SourceFile, SourceKafka:
	default:
		return fmt.Errorf("invalid pipeline source %q: must be %q or %q",
			c.Pipeline.Source, SourceFile, SourceKafka)
	}
	if c.Pipeline.MaxRecords < 0 {
		return fmt.Errorf("maxRecords must be >= 0, got %d", c.Pipeline.MaxRecords)
	}
	return nil
}

// applyEnvOverrides reads RMA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RMA_JSONLINES_FILE"); v != "" {
		cfg.Pipeline.JSONLinesFile = v
	}
	if v := os.Getenv("RMA_INPUT_DIRECTORY"); v != "" {
		cfg.Pipeline.InputDirectory = v
	}
	if v := os.Getenv("RMA_OUTPUT_DIRECTORY"); v != "" {
		cfg.Pipeline.OutputDirectory = v
	}
	if v := os.Getenv("RMA_MODEL_FILE"); v != "" {
		cfg.Pipeline.ModelFile = v
	}
	if v := os.Getenv("RMA_TEST_PHRASE"); v != "" {
		cfg.Pipeline.TestPhrase = v
	}
	if v := os.Getenv("RMA_MAX_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxRecords = n
		}
	}
	if v := os.Getenv("RMA_SOURCE"); v != "" {
		cfg.Pipeline.Source = v
	}
	if v := os.Getenv("RMA_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("RMA_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("RMA_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("RMA_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("RMA_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("RMA_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("RMA_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("RMA_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("RMA_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("RMA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RMA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RMA_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
