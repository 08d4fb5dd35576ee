package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv        string              `yaml:"app_env"`
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	ActivityStore ActivityStoreConfig `yaml:"activity_store"`
	Jobs          JobsConfig          `yaml:"jobs"`
}

type HTTPConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"ssl_mode"`
	SQLitePath string `yaml:"sqlite_path"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

type AuthConfig struct {
	JWTSecret       string  `yaml:"jwt_secret"`
	TokenTTLMinutes int     `yaml:"token_ttl_minutes"`
	LoginRatePerSec float64 `yaml:"login_rate_per_sec"`
	LoginBurst      int     `yaml:"login_burst"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// RedisConfig is optional; an empty Host keeps the token denylist in memory.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type KafkaConfig struct {
	Brokers   []string `yaml:"brokers"`
	CostTopic string   `yaml:"cost_topic"`
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// ActivityStoreConfig selects where calculation logs are kept: "sql" uses the
// main database, "dynamodb" a DynamoDB table.
type ActivityStoreConfig struct {
	Backend          string `yaml:"backend"`
	DynamoDBTable    string `yaml:"dynamodb_table"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	AWSRegion        string `yaml:"aws_region"`
}

type JobsConfig struct {
	ReconcileIntervalMinutes int `yaml:"reconcile_interval_minutes"`
	ReconcileParallelism     int `yaml:"reconcile_parallelism"`
}

func (j JobsConfig) ReconcileInterval() time.Duration {
	return time.Duration(j.ReconcileIntervalMinutes) * time.Minute
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		AppEnv: "development",
		HTTP: HTTPConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Name:       "aerocost",
			SSLMode:    "disable",
			SQLitePath: "aerocost.db",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 24 * 60,
			LoginRatePerSec: 1,
			LoginBurst:      5,
		},
		Redis: RedisConfig{Port: "6379"},
		Kafka: KafkaConfig{CostTopic: "aerocost.flight-costs"},
		ActivityStore: ActivityStoreConfig{
			Backend:       "sql",
			DynamoDBTable: "aerocost_calculation_logs",
			AWSRegion:     "us-east-1",
		},
		Jobs: JobsConfig{
			ReconcileIntervalMinutes: 360,
			ReconcileParallelism:     4,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.HTTP.Port, "HTTP_PORT")
	setList(&c.HTTP.CORSOrigins, "CORS_ORIGINS")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "PG_HOST")
	setString(&c.Database.User, "PG_USER")
	setString(&c.Database.Password, "PG_PASSWORD")
	setString(&c.Database.Name, "PG_DB")
	setString(&c.Database.SSLMode, "PG_SSLMODE")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setList(&c.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&c.Kafka.CostTopic, "KAFKA_TOPIC")

	setString(&c.ActivityStore.Backend, "ACTIVITY_STORE")
	setString(&c.ActivityStore.DynamoDBTable, "DYNAMODB_TABLE")
	setString(&c.ActivityStore.DynamoDBEndpoint, "DYNAMODB_ENDPOINT")
	setString(&c.ActivityStore.AWSRegion, "AWS_REGION")

	for _, v := range []struct {
		key string
		dst *int
	}{
		{"PG_PORT", &c.Database.Port},
		{"JWT_TTL_MINUTES", &c.Auth.TokenTTLMinutes},
		{"LOGIN_BURST", &c.Auth.LoginBurst},
		{"RECONCILE_INTERVAL_MINUTES", &c.Jobs.ReconcileIntervalMinutes},
		{"RECONCILE_PARALLELISM", &c.Jobs.ReconcileParallelism},
	} {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}

	if raw := os.Getenv("LOGIN_RATE_PER_SEC"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_PER_SEC %q: %w", raw, err)
		}
		c.Auth.LoginRatePerSec = f
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return errors.New("token TTL must be positive")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.ActivityStore.Backend {
	case "sql", "dynamodb":
	default:
		return fmt.Errorf("unsupported activity store %q", c.ActivityStore.Backend)
	}
	if c.Jobs.ReconcileIntervalMinutes < 0 {
		return errors.New("reconcile interval cannot be negative")
	}
	if c.Jobs.ReconcileParallelism <= 0 {
		c.Jobs.ReconcileParallelism = 1
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func setInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = n
	return nil
}
