package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	AuthCookieSecure bool
	AdminUsername    string
	AdminPassword    string

	WebhookSecret string
	PublicBaseURL string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	Storage StorageConfig
	Email   EmailConfig
	YouTube YouTubeConfig
	Media   MediaConfig
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// BaseURL is the public prefix media URLs are built from. Empty means
	// "derive from endpoint and bucket".
	BaseURL string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	// NotifyTo receives submission and contact notifications.
	NotifyTo string
}

type YouTubeConfig struct {
	APIKey    string
	ChannelID string
	CacheTTL  time.Duration
	// APIBaseURL overrides the Data API endpoint, used by tests.
	APIBaseURL string
}

type MediaConfig struct {
	// LocalDir is where webhook-ingested image variants are written.
	LocalDir string
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(func(cfg Config) *Config { return &cfg }),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "studio"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure: authCookieSecure,
		AdminUsername:    strings.TrimSpace(getenv("ADMIN_USERNAME", "")),
		AdminPassword:    getenv("ADMIN_PASSWORD", ""),
		WebhookSecret:    strings.TrimSpace(getenv("N8N_WEBHOOK_SECRET", "")),
		PublicBaseURL:    strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "studio"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		Storage: StorageConfig{
			Endpoint:  getenv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey: getenv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getenv("STORAGE_SECRET_KEY", ""),
			Bucket:    getenv("STORAGE_BUCKET", "studio-media"),
			Region:    getenv("STORAGE_REGION", "auto"),
			UseSSL:    getenvBool("STORAGE_USE_SSL", true),
			BaseURL:   strings.TrimRight(getenv("STORAGE_BASE_URL", ""), "/"),
		},
		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", ""),
			SMTPPort:     getenvInt("SMTP_PORT", 587),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			SMTPFrom:     getenv("SMTP_FROM", "no-reply@podcast.ge"),
			NotifyTo:     getenv("NOTIFY_EMAIL", ""),
		},
		YouTube: YouTubeConfig{
			APIKey:    strings.TrimSpace(getenv("YOUTUBE_API_KEY", "")),
			ChannelID: strings.TrimSpace(getenv("YOUTUBE_CHANNEL_ID", "")),
			CacheTTL:  getenvDuration("YOUTUBE_CACHE_TTL", 12*time.Hour),
		},
		Media: MediaConfig{
			LocalDir: getenv("MEDIA_LOCAL_DIR", "public/blog-images"),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
