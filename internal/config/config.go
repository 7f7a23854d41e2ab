package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
}

// Enabled reports whether enough R2 settings are present to archive activity.
func (c R2Config) Enabled() bool {
	return c.BucketName != "" && (c.AccountID != "" || c.Endpoint != "")
}

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DBDriver    string
	DatabaseURL string
	MongoURI    string
	MongoDB     string

	RedisURL        string
	ActivityChannel string

	TickInterval  time.Duration
	TickRateLimit float64
	TickRateBurst int
	PieceSizeMB   float64

	OTelEndpoint   string
	OTelSampleRate float64

	CorsConfig cors.Options
	R2         R2Config
}

// Load reads configuration from the environment, after loading ENV_FILE
// (default .env) when it exists. The returned bool is false when no env
// file was found.
func Load() (Config, bool) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	loaded := godotenv.Load(envFile) == nil

	return Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DB_URL", ""),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "tracker"),

		RedisURL:        getEnv("REDIS_URL", ""),
		ActivityChannel: getEnv("ACTIVITY_CHANNEL", "tracker:activity"),

		TickInterval:  getEnvDuration("TICK_INTERVAL", 0),
		TickRateLimit: getEnvFloat("TICK_RATE_LIMIT", 5),
		TickRateBurst: int(getEnvFloat("TICK_RATE_BURST", 10)),
		PieceSizeMB:   getEnvFloat("PIECE_SIZE_MB", 10),

		OTelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelSampleRate: getEnvFloat("OTEL_TRACE_SAMPLE_RATE", 0.1),

		CorsConfig: CorsConfig(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
		},
	}, loaded
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// getEnvDuration accepts Go durations ("30s") or plain milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func CorsConfig(origins string) cors.Options {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	return cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
