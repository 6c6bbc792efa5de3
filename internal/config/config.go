package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Auth      AuthConfig
	LLM       LLMConfig
	Voice     VoiceConfig
	Billing   BillingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port               string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	// Timezone used to compute "today" for usage limits.
	Timezone string
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JwtSecret string
	TokenTTL  time.Duration
}

type ProviderSpec struct {
	Provider    string // "huggingface", "openai", "ollama" or empty
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

type LLMConfig struct {
	Primary        ProviderSpec
	Secondary      ProviderSpec
	HuggingFaceKey string
	OpenAIKey      string
	MinReplyLength int
}

type VoiceConfig struct {
	ElevenLabsKey string
	BaseURL       string
	Model         string
	CacheTTL      time.Duration
}

type BillingConfig struct {
	Provider            string // "stripe" or "midtrans"
	StripeSecretKey     string
	StripeWebhookSecret string
	ProPriceId          string
	PremiumPriceId      string
	MidtransServerKey   string
	MidtransProduction  bool
	// Midtrans charges a fixed amount per period.
	ProAmount          int64
	PremiumAmount      int64
	PaymentFailedTopic string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3001"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			Timezone:           getEnv("APP_TIMEZONE", "Local"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Talk to Legends"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Duration(getEnvAsInt("JWT_TTL_HOURS", 72)) * time.Hour,
		},
		LLM: LLMConfig{
			Primary: ProviderSpec{
				Provider:    getEnv("LLM_PRIMARY_PROVIDER", "huggingface"),
				Model:       getEnv("LLM_PRIMARY_MODEL", "microsoft/DialoGPT-large"),
				BaseURL:     getEnv("LLM_PRIMARY_BASE_URL", ""),
				MaxTokens:   getEnvAsInt("LLM_PRIMARY_MAX_TOKENS", 500),
				Temperature: getEnvAsFloat("LLM_PRIMARY_TEMPERATURE", 0.7),
				TopP:        getEnvAsFloat("LLM_PRIMARY_TOP_P", 0.9),
			},
			Secondary: ProviderSpec{
				Provider:    getEnv("LLM_SECONDARY_PROVIDER", "huggingface"),
				Model:       getEnv("LLM_SECONDARY_MODEL", "facebook/blenderbot-400M-distill"),
				BaseURL:     getEnv("LLM_SECONDARY_BASE_URL", ""),
				MaxTokens:   getEnvAsInt("LLM_SECONDARY_MAX_TOKENS", 300),
				Temperature: getEnvAsFloat("LLM_SECONDARY_TEMPERATURE", 0.8),
			},
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			MinReplyLength: getEnvAsInt("LLM_MIN_REPLY_LENGTH", 50),
		},
		Voice: VoiceConfig{
			ElevenLabsKey: getEnv("ELEVENLABS_API_KEY", ""),
			BaseURL:       getEnv("ELEVENLABS_BASE_URL", ""),
			Model:         getEnv("ELEVENLABS_MODEL", "eleven_multilingual_v2"),
			CacheTTL:      time.Duration(getEnvAsInt("VOICE_CACHE_MINUTES", 60)) * time.Minute,
		},
		Billing: BillingConfig{
			Provider:            getEnv("BILLING_PROVIDER", "stripe"),
			StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			ProPriceId:          getEnv("STRIPE_PRO_PRICE_ID", ""),
			PremiumPriceId:      getEnv("STRIPE_PREMIUM_PRICE_ID", ""),
			MidtransServerKey:   getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransProduction:  getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
			ProAmount:           int64(getEnvAsInt("MIDTRANS_PRO_AMOUNT", 149000)),
			PremiumAmount:       int64(getEnvAsInt("MIDTRANS_PREMIUM_AMOUNT", 299000)),
			PaymentFailedTopic:  getEnv("PAYMENT_FAILED_TOPIC", "billing.payment_failed"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}
}

// Location resolves the configured timezone, falling back to the process local zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warn: unknown timezone %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
