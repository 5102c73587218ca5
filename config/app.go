package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type App struct {
	Port             string
	Env              string
	LogLevel         string
	JWTSecret        string
	SessionTTL       time.Duration
	AllowAdminSignup bool

	PostgresURI string
	MongoURI    string
	MongoDB     string
	RedisAddr   string

	GCSBucket          string
	GCSCredentialsFile string
	UploadDir          string

	KafkaBroker string
	KafkaTopic  string

	JobsCacheTTL time.Duration
	WebDir       string
}

func (a *App) IsProduction() bool { return strings.EqualFold(a.Env, "production") }

// Load reads the process environment. Call godotenv.Load first to pick up .env.
func Load() (*App, error) {
	a := &App{
		Port:             getenv("PORT", "8080"),
		Env:              getenv("APP_ENV", "development"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		AllowAdminSignup: getBool("ALLOW_ADMIN_SIGNUP", true),

		PostgresURI: os.Getenv("POSTGRES_URI"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "huffaz"),
		RedisAddr:   firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),

		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),
		UploadDir:          getenv("UPLOAD_DIR", "./public/uploads"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "huffaz.events"),

		JobsCacheTTL: getDuration("JOBS_CACHE_TTL", 30*time.Second),
		WebDir:       os.Getenv("WEB_DIR"),
	}

	if len(a.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET must be set and at least 32 bytes long")
	}
	if a.PostgresURI == "" {
		return nil, errors.New("POSTGRES_URI environment variable is not set")
	}
	return a, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
