package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPort                    = "8080"
	DefaultAccessTokenExpiryMin    = 15
	DefaultRefreshTokenExpiryMin   = 1440
	DefaultBcryptCost              = 12
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultSessionCacheTTLSeconds  = 300
	DefaultEventsExchange          = "nibtara.accounts"
	DefaultEmbeddingTimeoutSeconds = 30
	DefaultRateLimitRPS            = 5
	DefaultRateLimitBurst          = 10
	DefaultTokenFlushSchedule      = "@daily"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AutoMigrate        bool
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	BcryptCost         int

	LogLevel  string
	LogFormat string

	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	SessionCacheTTLSeconds int

	AMQPURL        string
	EventsExchange string

	EmbeddingURL            string
	EmbeddingToken          string
	EmbeddingTimeoutSeconds int

	RateLimitRPS   int
	RateLimitBurst int

	// TokenFlushSchedule is a cron spec; empty disables the job.
	TokenFlushSchedule string
}

// Load reads config/.env.dev (or config/.env.prod when ENV=production) and lets real
// environment variables override anything found in the file.
func Load() *Config {
	env := getEnv("ENV", "development")
	fileVals := readEnvFile(env)

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileVals[key]
	}

	return &Config{
		Env:                env,
		Port:               valueOr(lookup("PORT"), DefaultPort),
		DBURL:              mustValue("DB_URL", lookup("DB_URL")),
		AutoMigrate:        boolOr("AUTO_MIGRATE", lookup("AUTO_MIGRATE"), false),
		AccessTokenSecret:  mustValue("ACCESS_TOKEN_SECRET", lookup("ACCESS_TOKEN_SECRET")),
		RefreshTokenSecret: mustValue("REFRESH_TOKEN_SECRET", lookup("REFRESH_TOKEN_SECRET")),
		AccessExpiryMin:    intOr("ACCESS_TOKEN_EXPIRY", lookup("ACCESS_TOKEN_EXPIRY"), DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   intOr("REFRESH_TOKEN_EXPIRY", lookup("REFRESH_TOKEN_EXPIRY"), DefaultRefreshTokenExpiryMin),
		BcryptCost:         intOr("BCRYPT_COST", lookup("BCRYPT_COST"), DefaultBcryptCost),

		LogLevel:  valueOr(lookup("LOG_LEVEL"), DefaultLogLevel),
		LogFormat: valueOr(lookup("LOG_FORMAT"), DefaultLogFormat),

		RedisAddr:              lookup("REDIS_ADDR"),
		RedisPassword:          lookup("REDIS_PASSWORD"),
		RedisDB:                intOr("REDIS_DB", lookup("REDIS_DB"), 0),
		SessionCacheTTLSeconds: intOr("SESSION_CACHE_TTL_SECONDS", lookup("SESSION_CACHE_TTL_SECONDS"), DefaultSessionCacheTTLSeconds),

		AMQPURL:        lookup("AMQP_URL"),
		EventsExchange: valueOr(lookup("EVENTS_EXCHANGE"), DefaultEventsExchange),

		EmbeddingURL:            lookup("EMBEDDING_URL"),
		EmbeddingToken:          lookup("EMBEDDING_TOKEN"),
		EmbeddingTimeoutSeconds: intOr("EMBEDDING_TIMEOUT_SECONDS", lookup("EMBEDDING_TIMEOUT_SECONDS"), DefaultEmbeddingTimeoutSeconds),

		RateLimitRPS:   intOr("RATE_LIMIT_RPS", lookup("RATE_LIMIT_RPS"), DefaultRateLimitRPS),
		RateLimitBurst: intOr("RATE_LIMIT_BURST", lookup("RATE_LIMIT_BURST"), DefaultRateLimitBurst),

		TokenFlushSchedule: valueOr(lookup("TOKEN_FLUSH_SCHEDULE"), DefaultTokenFlushSchedule),
	}
}

func readEnvFile(env string) map[string]string {
	name := ".env.dev"
	if env == "production" {
		name = ".env.prod"
	}
	vals, err := godotenv.Read(filepath.Join("config", name))
	if err != nil {
		// No file is fine; everything can come from the environment.
		return map[string]string{}
	}
	return vals
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func valueOr(value, defaultVal string) string {
	if value != "" {
		return value
	}
	return defaultVal
}

func mustValue(key, value string) string {
	if value == "" {
		logrus.Fatalf("Missing required config: %s", key)
	}
	return value
}

func intOr(key, value string, defaultVal int) int {
	if value == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func boolOr(key, value string, defaultVal bool) bool {
	if value == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
