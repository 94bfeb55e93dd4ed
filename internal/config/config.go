package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	defaultJWTSecret = "change-me-in-env"
)

// app config, read from the environment
type Config struct {
	Env              string
	Port             int
	StoreDriver      string
	MongoURI         string
	MongoDatabase    string
	DatabaseURL      string
	JWTSecret        string
	CORSOrigins      []string
	RedisAddr        string
	DBConnectTimeout time.Duration
}

// loads configuration from environment variables, after an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := getEnvOrDefault("APP_ENV", getEnvOrDefault("NODE_ENV", "development"))
	mongoURI := getEnvOrDefault("MONGODB_URI", "mongodb://127.0.0.1:27017/intervyou")

	config := &Config{
		Env:              env,
		Port:             getEnvInt("PORT", 4000),
		StoreDriver:      strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMongo)),
		MongoURI:         mongoURI,
		MongoDatabase:    getEnvOrDefault("MONGODB_DATABASE", databaseFromURI(mongoURI)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", defaultJWTSecret),
		CORSOrigins:      parseCORSOrigins(os.Getenv("CORS_ORIGIN"), env),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func validateConfig(config *Config) error {
	switch config.StoreDriver {
	case DriverMongo:
	case DriverPostgres:
		if config.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return errors.New("unsupported store driver: " + config.StoreDriver + ". Currently supported: mongo, postgres")
	}
	if config.IsProduction() && config.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// comma separated list; falls back to any origin outside production
func parseCORSOrigins(raw, env string) []string {
	var origins []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) > 0 {
		return origins
	}
	if env == "production" {
		return []string{"http://localhost:5173"}
	}
	return []string{"*"}
}

func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "intervyou"
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return "intervyou"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
