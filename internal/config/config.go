package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	AppEnv     string
	LogLevel   string

	MySQLDSN       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	ResetDB        bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret       string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	// FirebaseServiceAccount is the raw service account JSON blob.
	FirebaseServiceAccount string
	FederatedIssuer        string
	FederatedAudience      string

	CORSAllowedOrigins []string

	KafkaBrokers    []string
	KafkaResetTopic string

	SwaggerHost string
}

// LoadDotenv loads variables from path when the file exists. Variables already
// present in the environment win.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := &Config{
		ServerPort: getEnv("PORT", "5001"),
		AppEnv:     strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/meetconnect?charset=utf8mb4&parseTime=True&loc=UTC"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 16),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 8),
		ResetDB:        getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		SessionTokenTTL: getEnvDuration("SESSION_TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:   getEnvDuration("RESET_TOKEN_TTL", time.Hour),

		FirebaseServiceAccount: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		FederatedIssuer:        os.Getenv("FEDERATED_ISSUER"),
		FederatedAudience:      os.Getenv("FEDERATED_AUDIENCE"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		KafkaBrokers:    getEnvList("KAFKA_BROKERS", nil),
		KafkaResetTopic: getEnv("KAFKA_RESET_TOPIC", "auth.password-reset"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
	return cfg
}

// Validate reports configuration that must stop the process at startup.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("SESSION_TOKEN_TTL must be positive, got %s", c.SessionTokenTTL)
	}
	if c.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive, got %s", c.ResetTokenTTL)
	}
	if c.AppEnv != EnvDevelopment && c.AppEnv != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.AppEnv)
	}
	return nil
}

// IsDevelopment reports whether development-only behaviour is enabled.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Federated returns the issuer and audience used to verify federated identity
// tokens. Explicit FEDERATED_* settings win over the service account project.
// An empty issuer means federated sign-in is disabled.
func (c *Config) Federated() (issuer, audience string, err error) {
	issuer, audience = c.FederatedIssuer, c.FederatedAudience
	if c.FirebaseServiceAccount != "" {
		var sa struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal([]byte(c.FirebaseServiceAccount), &sa); err != nil {
			return "", "", fmt.Errorf("parse FIREBASE_SERVICE_ACCOUNT: %w", err)
		}
		if sa.ProjectID == "" {
			return "", "", errors.New("FIREBASE_SERVICE_ACCOUNT has no project_id")
		}
		if issuer == "" {
			issuer = "https://securetoken.google.com/" + sa.ProjectID
		}
		if audience == "" {
			audience = sa.ProjectID
		}
	}
	if issuer != "" && audience == "" {
		return "", "", errors.New("FEDERATED_AUDIENCE is required when FEDERATED_ISSUER is set")
	}
	return issuer, audience, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("90m") and a day suffix ("7d").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
