package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Env          string        `mapstructure:"env"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
	Migrate    bool   `mapstructure:"migrate"`
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type KafkaConfig struct {
	Broker       string        `mapstructure:"broker"`
	GroupID      string        `mapstructure:"group_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	LoginPerSecond float64 `mapstructure:"login_per_second"`
	LoginBurst     int     `mapstructure:"login_burst"`
	UserPerSecond  float64 `mapstructure:"user_per_second"`
	UserBurst      int     `mapstructure:"user_burst"`
}

// Load reads configuration from the environment (DB_HOST, JWT_SECRET, ...) on top
// of defaults. An optional config file is read when CONFIG_FILE is set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("app.read_timeout", 5*time.Second)
	v.SetDefault("app.write_timeout", 10*time.Second)
	v.SetDefault("app.idle_timeout", 60*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "team_pulse")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("db.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.group_id", "team-pulse-notifications")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 7*24*time.Hour)

	v.SetDefault("rate_limit.login_per_second", 0.1)
	v.SetDefault("rate_limit.login_burst", 5)
	v.SetDefault("rate_limit.user_per_second", 5.0)
	v.SetDefault("rate_limit.user_burst", 10)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required (JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl must be positive")
	}
	if c.Database.MaxRetries < 1 {
		c.Database.MaxRetries = 1
	}
	if c.Redis.MaxRetries < 1 {
		c.Redis.MaxRetries = 1
	}
	return nil
}

// Require reports a missing broker for the processes that need Kafka.
func (k KafkaConfig) Require() error {
	if k.Broker == "" {
		return fmt.Errorf("kafka.broker is required (KAFKA_BROKER)")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
