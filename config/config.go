package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	AdminAPIKey string `mapstructure:"ADMIN_API_KEY"`

	FirebaseCredentialsJSON string `mapstructure:"FIREBASE_CREDENTIALS_JSON"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey       string `mapstructure:"FIREBASE_WEB_API_KEY"`

	NotifyProvider string `mapstructure:"NOTIFY_PROVIDER"`
	OperatorEmail  string `mapstructure:"OPERATOR_EMAIL"`

	EmailJSEndpoint         string `mapstructure:"EMAILJS_ENDPOINT"`
	EmailJSServiceID        string `mapstructure:"EMAILJS_SERVICE_ID"`
	EmailJSPublicKey        string `mapstructure:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey       string `mapstructure:"EMAILJS_PRIVATE_KEY"`
	EmailJSCustomerTemplate string `mapstructure:"EMAILJS_CUSTOMER_TEMPLATE"`
	EmailJSOperatorTemplate string `mapstructure:"EMAILJS_OPERATOR_TEMPLATE"`
	EmailJSLeadTemplate     string `mapstructure:"EMAILJS_LEAD_TEMPLATE"`
	EmailJSCodeTemplate     string `mapstructure:"EMAILJS_CODE_TEMPLATE"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASS"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	OTPProvider string        `mapstructure:"OTP_PROVIDER"`
	OTPTTL      time.Duration `mapstructure:"OTP_TTL"`

	FastDeliveryFee        int64         `mapstructure:"FAST_DELIVERY_FEE"`
	StandardDeliveryWindow string        `mapstructure:"STANDARD_DELIVERY_WINDOW"`
	FastDeliveryWindow     string        `mapstructure:"FAST_DELIVERY_WINDOW"`
	CheckoutSessionTTL     time.Duration `mapstructure:"CHECKOUT_SESSION_TTL"`
	MaxProofWidth          uint          `mapstructure:"MAX_PROOF_WIDTH"`

	UploadsDir      string        `mapstructure:"UPLOADS_DIR"`
	BackupDir       string        `mapstructure:"BACKUP_DIR"`
	BackupRetention time.Duration `mapstructure:"BACKUP_RETENTION"`
	PublicBaseURL   string        `mapstructure:"PUBLIC_BASE_URL"`

	// Warnings lists settings that were ignored in favour of their defaults.
	Warnings []string `mapstructure:"-"`
}

var defaults = map[string]interface{}{
	"PORT":      "8080",
	"GIN_MODE":  "release",
	"LOG_LEVEL": "info",

	"DATABASE_URL": "",
	"DB_HOST":      "localhost",
	"DB_PORT":      "5432",
	"DB_USER":      "postgres",
	"DB_PASSWORD":  "",
	"DB_NAME":      "giftology",

	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"JWT_SECRET":    "",
	"ADMIN_API_KEY": "",

	"FIREBASE_CREDENTIALS_JSON": "",
	"FIREBASE_PROJECT_ID":       "",
	"FIREBASE_WEB_API_KEY":      "",

	"NOTIFY_PROVIDER": "log",
	"OPERATOR_EMAIL":  "",

	"EMAILJS_ENDPOINT":          "https://api.emailjs.com/api/v1.0/email/send",
	"EMAILJS_SERVICE_ID":        "",
	"EMAILJS_PUBLIC_KEY":        "",
	"EMAILJS_PRIVATE_KEY":       "",
	"EMAILJS_CUSTOMER_TEMPLATE": "",
	"EMAILJS_OPERATOR_TEMPLATE": "",
	"EMAILJS_LEAD_TEMPLATE":     "",
	"EMAILJS_CODE_TEMPLATE":     "",

	"SMTP_HOST": "smtp.gmail.com",
	"SMTP_PORT": 587,
	"SMTP_USER": "",
	"SMTP_PASS": "",
	"SMTP_FROM": "",

	"OTP_PROVIDER": "email",
	"OTP_TTL":      10 * time.Minute,

	"FAST_DELIVERY_FEE":        int64(100),
	"STANDARD_DELIVERY_WINDOW": "Delivery in 5-7 days",
	"FAST_DELIVERY_WINDOW":     "Delivery in 1-2 days",
	"CHECKOUT_SESSION_TTL":     time.Hour,
	"MAX_PROOF_WIDTH":          uint(1280),

	"UPLOADS_DIR":      "./uploads",
	"BACKUP_DIR":       "./backup/uploads",
	"BACKUP_RETENTION": 4 * 24 * time.Hour,
	"PUBLIC_BASE_URL":  "",
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var warnings []string
	for key, value := range defaults {
		raw, ok := os.LookupEnv(key)
		if !ok || parses(value, strings.TrimSpace(raw)) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s=%q is not valid, using default %v", key, raw, value))
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Warnings = warnings
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.FastDeliveryFee < 0 {
		cfg.FastDeliveryFee = 0
	}
	return cfg, nil
}

// parses reports whether raw can be decoded into the type of def.
func parses(def interface{}, raw string) bool {
	var err error
	switch def.(type) {
	case int:
		_, err = strconv.Atoi(raw)
	case int64:
		_, err = strconv.ParseInt(raw, 10, 64)
	case uint:
		_, err = strconv.ParseUint(raw, 10, 64)
	case time.Duration:
		_, err = time.ParseDuration(raw)
	}
	return err == nil
}

// DSN returns DATABASE_URL or builds a postgres DSN from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
