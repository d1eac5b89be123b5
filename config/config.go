package config

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret string
	TokenTTL  time.Duration

	// RedisURL enables cross-instance message fan-out when set
	RedisURL     string
	RedisChannel string

	SendGridAPIKey  string
	NotifyFromEmail string
	NotifyFromName  string

	CloudinaryURL          string
	CloudinaryUploadPreset string

	RequestTimeout   time.Duration
	BackfillSchedule string

	// SendRatePerMinute caps message sends per user, 0 disables the limit
	SendRatePerMinute int
	SendRateBurst     int
}

// New sets up all config related services
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "production")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REDIS_CHANNEL", "legal-connect:chat")
	v.SetDefault("NOTIFY_FROM_EMAIL", "no-reply@legal-connect.app")
	v.SetDefault("NOTIFY_FROM_NAME", "Legal Connect")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("BACKFILL_SCHEDULE", "@every 1h")
	v.SetDefault("SEND_RATE_PER_MINUTE", 60)
	v.SetDefault("SEND_RATE_BURST", 10)

	//setup zap logger and replace default logger
	logger, err := setLogger(v.GetString("ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:                    v.GetString("DB_URI"),
		DatabaseName:           v.GetString("DB_NAME"),
		BaseURL:                v.GetString("BASE_URL"),
		Port:                   v.GetString("PORT"),
		Env:                    v.GetString("ENV"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		TokenTTL:               v.GetDuration("TOKEN_TTL"),
		RedisURL:               v.GetString("REDIS_URL"),
		RedisChannel:           v.GetString("REDIS_CHANNEL"),
		SendGridAPIKey:         v.GetString("SENDGRID_API_KEY"),
		NotifyFromEmail:        v.GetString("NOTIFY_FROM_EMAIL"),
		NotifyFromName:         v.GetString("NOTIFY_FROM_NAME"),
		CloudinaryURL:          v.GetString("CLOUDINARY_URL"),
		CloudinaryUploadPreset: v.GetString("CLOUDINARY_UPLOAD_PRESET"),
		RequestTimeout:         v.GetDuration("REQUEST_TIMEOUT"),
		BackfillSchedule:       v.GetString("BACKFILL_SCHEDULE"),
		SendRatePerMinute:      v.GetInt("SEND_RATE_PER_MINUTE"),
		SendRateBurst:          v.GetInt("SEND_RATE_BURST"),
	}
}
