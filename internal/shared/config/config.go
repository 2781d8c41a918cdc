package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type LeaveConfig struct {
	PollInterval          time.Duration
	PollBatchSize         int
	ResetCron             string
	ListLookbackDays      int
	PendingLookbackDays   int
	ApplicantCacheTTL     time.Duration
	ResetCheckMarkerTTL   time.Duration
	SubmitRateLimitPerSec float64
	SubmitRateLimitBurst  int
}

type Config struct {
	Port               string
	JWTSecret          string
	RedisAddr          string
	KafkaBroker        string
	KafkaGroupID       string
	RBACModelPath      string
	IdempotencyTTL     time.Duration
	CORSAllowedOrigins []string
	Database           DatabaseConfig
	Leave              LeaveConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("KAFKA_GROUP_ID", "go-school-leave-processing")
	v.SetDefault("IDEMPOTENCY_TTL", "24h")

	v.SetDefault("LEAVE_POLL_INTERVAL", "10s")
	v.SetDefault("LEAVE_POLL_BATCH_SIZE", 100)
	v.SetDefault("LEAVE_RESET_CRON", "5 0 1 1 *")
	v.SetDefault("LEAVE_LIST_LOOKBACK_DAYS", 365)
	v.SetDefault("LEAVE_PENDING_LOOKBACK_DAYS", 30)
	v.SetDefault("LEAVE_BALANCE_CACHE_TTL", "10m")
	v.SetDefault("LEAVE_RESET_MARKER_TTL", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 1)
	v.SetDefault("RATE_LIMIT_BURST", 5)
}

// Load reads .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Port:               v.GetString("PORT"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		KafkaBroker:        v.GetString("KAFKA_BROKER"),
		KafkaGroupID:       v.GetString("KAFKA_GROUP_ID"),
		RBACModelPath:      v.GetString("RBAC_MODEL_PATH"),
		IdempotencyTTL:     v.GetDuration("IDEMPOTENCY_TTL"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Database: DatabaseConfig{
			Host:       v.GetString("DB_HOST"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			Port:       v.GetString("DB_PORT"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		Leave: LeaveConfig{
			PollInterval:          v.GetDuration("LEAVE_POLL_INTERVAL"),
			PollBatchSize:         v.GetInt("LEAVE_POLL_BATCH_SIZE"),
			ResetCron:             v.GetString("LEAVE_RESET_CRON"),
			ListLookbackDays:      v.GetInt("LEAVE_LIST_LOOKBACK_DAYS"),
			PendingLookbackDays:   v.GetInt("LEAVE_PENDING_LOOKBACK_DAYS"),
			ApplicantCacheTTL:     v.GetDuration("LEAVE_BALANCE_CACHE_TTL"),
			ResetCheckMarkerTTL:   v.GetDuration("LEAVE_RESET_MARKER_TTL"),
			SubmitRateLimitPerSec: v.GetFloat64("RATE_LIMIT_RPS"),
			SubmitRateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
