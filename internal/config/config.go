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

// Config holds application configuration
type Config struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	DB   DBConfig   `yaml:"db"`
	Auth AuthConfig `yaml:"auth"`
	HTTP HTTPConfig `yaml:"http"`

	Digest DigestConfig `yaml:"digest"`
	SMTP   SMTPConfig   `yaml:"smtp"`

	SeedDemo bool `yaml:"seed_demo"`
}

// DBConfig describes the PostgreSQL connection. ConnStr wins over the individual fields.
type DBConfig struct {
	ConnStr  string `yaml:"conn_str"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// AuthConfig holds bearer token settings
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// HTTPConfig holds REST transport settings
type HTTPConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	RateLimitRPS       float64  `yaml:"rate_limit_rps"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
}

// DigestConfig controls the scheduled monthly digest
type DigestConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Schedule       string `yaml:"schedule"`
	SavingsGoalPct int    `yaml:"savings_goal"`
}

// SMTPConfig is the outgoing mail server used by the digest
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		GRPCAddr: ":8080",
		HTTPAddr: ":8081",
		LogLevel: "info",
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "spendcast",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       20,
			RateLimitBurst:     40,
		},
		Digest: DigestConfig{
			Schedule:       "0 8 1 * *",
			SavingsGoalPct: 20,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

// Load builds the configuration
// Logic:
//  1. Start from Default()
//  2. Overlay the YAML file named by CONFIG_FILE, if set
//  3. Overlay environment variables
//  4. Validate
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
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

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.GRPCAddr = getEnv("GRPC_ADDR", c.GRPCAddr)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.DB.ConnStr = getEnv("DB_CONN_STR", c.DB.ConnStr)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.SMTP.Host = getEnv("SMTP_HOST", c.SMTP.Host)
	c.SMTP.Username = getEnv("SMTP_USERNAME", c.SMTP.Username)
	c.SMTP.Password = getEnv("SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = getEnv("SMTP_FROM", c.SMTP.From)
	c.Digest.Schedule = getEnv("DIGEST_SCHEDULE", c.Digest.Schedule)

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		c.HTTP.CORSAllowedOrigins = splitList(v)
	}

	var errs []error
	var err error
	if c.Auth.TokenTTL, err = getEnvDuration("TOKEN_TTL", c.Auth.TokenTTL); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", c.HTTP.RateLimitRPS); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", c.HTTP.RateLimitBurst); err != nil {
		errs = append(errs, err)
	}
	if c.SMTP.Port, err = getEnvInt("SMTP_PORT", c.SMTP.Port); err != nil {
		errs = append(errs, err)
	}
	if c.Digest.Enabled, err = getEnvBool("DIGEST_ENABLED", c.Digest.Enabled); err != nil {
		errs = append(errs, err)
	}
	if c.SeedDemo, err = getEnvBool("SEED_DEMO", c.SeedDemo); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	if c.DBConnString() == "" {
		return fmt.Errorf("DB_CONN_STR or DB_HOST/DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings cannot be negative")
	}
	if c.Digest.SavingsGoalPct < 0 || c.Digest.SavingsGoalPct > 90 {
		return fmt.Errorf("digest savings goal must be between 0 and 90")
	}
	if c.Digest.Enabled && c.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when the digest is enabled")
	}
	return nil
}

// DBConnString returns the explicit connection string, or one built from the
// individual fields (Docker friendly)
func (c *Config) DBConnString() string {
	if c.DB.ConnStr != "" {
		return c.DB.ConnStr
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultVal, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return defaultVal, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultVal, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultVal, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
