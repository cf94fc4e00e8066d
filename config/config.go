package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is built once at startup and passed into the components that need
// it; nothing reads ambient process state at call time.
type Config struct {
	Port           string
	Env            string // "development" or "production"
	DatabaseURL    string
	JWTSecret      string
	JWTExpiryHours int

	// Base URL used for admin deep links inside notifications.
	AdminBaseURL string

	Notify     NotifyConfig
	Moderation ModerationConfig
}

type NotifyConfig struct {
	// Channel selects the gateway implementation: "telegram", "whatsapp",
	// "email" or "off".
	Channel string

	TelegramBotToken string
	TelegramChatID   string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string
	TwilioWhatsAppTo   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailTo      string

	// Retry sweeper settings for failed deliveries.
	MaxAttempts   int
	RetrySchedule string // cron spec
}

type ModerationConfig struct {
	APIKey   string
	Endpoint string
	Model    string

	// Category -> threshold in [0,1]. A category fails when its score is
	// greater than or equal to the threshold.
	Thresholds map[string]float64
}

// DefaultModerationThresholds cover the classifier categories the shop
// cares about.
var DefaultModerationThresholds = map[string]float64{
	"hate_and_discrimination":        0.5,
	"sexual":                         0.5,
	"violence_and_threats":           0.5,
	"dangerous_and_criminal_content": 0.5,
	"selfharm":                       0.5,
}

// Load builds the Config from environment variables. Call godotenv.Load
// before this in main.
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		DatabaseURL:    os.Getenv("DB_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		AdminBaseURL:   getEnv("ADMIN_BASE_URL", "http://127.0.0.1:8080/admin"),
		Notify: NotifyConfig{
			Channel:            getEnv("NOTIFY_CHANNEL", "telegram"),
			TelegramBotToken:   os.Getenv("TELEGRAM_BOT_API_KEY"),
			TelegramChatID:     os.Getenv("TELEGRAM_USER_ID"),
			TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
			TwilioWhatsAppTo:   os.Getenv("NOTIFY_WHATSAPP_TO"),
			SMTPHost:           os.Getenv("SMTP_HOST"),
			SMTPPort:           getEnvInt("SMTP_PORT", 587),
			SMTPUsername:       os.Getenv("SMTP_USERNAME"),
			SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
			EmailFrom:          os.Getenv("NOTIFY_EMAIL_FROM"),
			EmailTo:            os.Getenv("NOTIFY_EMAIL_TO"),
			MaxAttempts:        getEnvInt("NOTIFY_MAX_ATTEMPTS", 5),
			RetrySchedule:      getEnv("NOTIFY_RETRY_SCHEDULE", "*/5 * * * *"),
		},
		Moderation: ModerationConfig{
			APIKey:     os.Getenv("MISTRAL_API_KEY"),
			Endpoint:   getEnv("MISTRAL_MODERATION_URL", "https://api.mistral.ai/v1/moderations"),
			Model:      getEnv("MISTRAL_MODERATION_MODEL", "mistral-moderation-latest"),
			Thresholds: parseThresholds(os.Getenv("MODERATION_THRESHOLDS")),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// parseThresholds reads "category:0.4,other:0.6"; empty input keeps the
// defaults.
func parseThresholds(raw string) map[string]float64 {
	if raw == "" {
		return DefaultModerationThresholds
	}
	out := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || v < 0 || v > 1 {
			continue
		}
		out[parts[0]] = v
	}
	if len(out) == 0 {
		return DefaultModerationThresholds
	}
	return out
}
