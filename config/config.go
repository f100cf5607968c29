package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreLocal     = "local"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	MongoDB      string `mapstructure:"MONGO_DATABASE"`
	LocalDataDir string `mapstructure:"LOCAL_DATA_DIR"`

	// Firebase.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseServiceAccount  string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Redis configuration. An empty address disables the auth cache and task queue.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Auth.
	AuthCacheTTL          time.Duration `mapstructure:"AUTH_CACHE_TTL"`
	AuthInsecureDevDecode bool          `mapstructure:"AUTH_INSECURE_DEV_DECODE"`

	// Email and push notifications.
	EmailHost         string        `mapstructure:"EMAIL_HOST"`
	EmailPort         int           `mapstructure:"EMAIL_PORT"`
	EmailUser         string        `mapstructure:"EMAIL_USER"`
	EmailPass         string        `mapstructure:"EMAIL_PASS"`
	EmailFromName     string        `mapstructure:"EMAIL_FROM_NAME"`
	TrackingBaseURL   string        `mapstructure:"TRACKING_BASE_URL"`
	VendorTopicPrefix string        `mapstructure:"VENDOR_TOPIC_PREFIX"`
	NotifyTimeout     time.Duration `mapstructure:"NOTIFY_TIMEOUT"`

	// HTTP surface.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	TrustedProxies     string `mapstructure:"TRUSTED_PROXIES"`
	StaticDir          string `mapstructure:"STATIC_DIR"`
	EnableMetrics      bool   `mapstructure:"ENABLE_METRICS"`
}

var AppConfig Config

func LoadConfig() {
	viper.Reset()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_DRIVER", StoreFirestore)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "quotecompare")
	viper.SetDefault("LOCAL_DATA_DIR", "data")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("AUTH_CACHE_TTL", "10m")
	viper.SetDefault("AUTH_INSECURE_DEV_DECODE", false)
	viper.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_PORT", 587)
	viper.SetDefault("EMAIL_USER", "")
	viper.SetDefault("EMAIL_PASS", "")
	viper.SetDefault("EMAIL_FROM_NAME", "Quote Compare App")
	viper.SetDefault("TRACKING_BASE_URL", "http://localhost:4200/track")
	viper.SetDefault("VENDOR_TOPIC_PREFIX", "vendor-leads-")
	viper.SetDefault("NOTIFY_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("STATIC_DIR", "public/browser")
	viper.SetDefault("ENABLE_METRICS", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.StoreDriver = strings.ToLower(strings.TrimSpace(AppConfig.StoreDriver))
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// InsecureDecodeAllowed reports whether unverified token decoding may be used.
// It is never allowed in production, whatever the flag says.
func InsecureDecodeAllowed() bool {
	return AppConfig.AuthInsecureDevDecode && !IsProduction()
}

// MailConfigured reports whether SMTP credentials are present.
func MailConfigured() bool {
	return AppConfig.EmailUser != "" && AppConfig.EmailPass != ""
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(AppConfig.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// TrustedProxies lists the proxy addresses or CIDRs whose forwarding headers
// are believed. Empty means client addresses come from the connection only.
func TrustedProxies() []string {
	var out []string
	for _, p := range strings.Split(AppConfig.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
