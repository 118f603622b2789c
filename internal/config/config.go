package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	POS       POSConfig
	Session   SessionConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Journal   JournalConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// UpstreamConfig points the terminal at the external CodeBrew API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// POSConfig carries the checkout parameters of the terminal.
type POSConfig struct {
	TaxRate   float64
	StoreName string
	// ClampNegativeTotal floors the cart total at zero when the discount
	// exceeds subtotal+tax. Off by default: the product historically
	// allowed negative totals and some branches use them for refunds.
	ClampNegativeTotal bool
}

type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type    string // "usb", "network", or "none"
	USBPath string
	Address string
	Width   int // characters per line
}

// JournalConfig controls the optional local sale journal. The journal is
// off by default; without it receipts live only in session memory.
type JournalConfig struct {
	Enabled  bool
	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "codebrew-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8081")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000/api/v1")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("POS_TAX_RATE", 0.12)
	viper.SetDefault("POS_STORE_NAME", "CodeBrew")
	viper.SetDefault("POS_CLAMP_NEGATIVE_TOTAL", false)
	viper.SetDefault("SESSION_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("JOURNAL_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "codebrew_pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Manila")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("UPSTREAM_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		},
		POS: POSConfig{
			TaxRate:            viper.GetFloat64("POS_TAX_RATE"),
			StoreName:          viper.GetString("POS_STORE_NAME"),
			ClampNegativeTotal: viper.GetBool("POS_CLAMP_NEGATIVE_TOTAL"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET"),
			Expiry: time.Duration(viper.GetInt("SESSION_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Journal: JournalConfig{
			Enabled: viper.GetBool("JOURNAL_ENABLED"),
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				Name:     viper.GetString("DB_NAME"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				SSLMode:  viper.GetString("DB_SSL_MODE"),
				Timezone: viper.GetString("DB_TIMEZONE"),
			},
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
