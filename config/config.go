package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type GatewayConfig struct {
	BaseURL        string
	APIKey         string
	Session        string
	TimeoutSeconds int
}

// IsConfigured returns true if all required gateway configuration is present
func (c GatewayConfig) IsConfigured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

type TypingConfig struct {
	WPM            float64
	MinSeconds     float64
	MaxSeconds     float64
	JitterFraction float64
}

type AlertConfig struct {
	SlackWebhookURL string
}

// IsConfigured returns true if alerting is enabled
func (c AlertConfig) IsConfigured() bool {
	return c.SlackWebhookURL != ""
}

type AppConfig struct {
	Port               string // Optional with default "8000"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string

	// AdminRecipients are chat ids or bare phone numbers notified on
	// session status changes
	AdminRecipients []string

	// IgnoredEvents are event names acknowledged without normalization
	IgnoredEvents []string

	GatewayConfig GatewayConfig
	TypingConfig  TypingConfig
	AlertConfig   AlertConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	baseURL, err := getEnvRequired("BOT_URL")
	if err != nil {
		return nil, err
	}

	apiKey, err := getEnvRequired("BOT_API_KEY")
	if err != nil {
		return nil, err
	}

	timeoutSeconds, err := getEnvInt("GATEWAY_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	wpm, err := getEnvFloat("TYPING_WPM", 125)
	if err != nil {
		return nil, err
	}
	minSeconds, err := getEnvFloat("TYPING_MIN_SECONDS", 0.9)
	if err != nil {
		return nil, err
	}
	maxSeconds, err := getEnvFloat("TYPING_MAX_SECONDS", 8)
	if err != nil {
		return nil, err
	}
	jitter, err := getEnvFloat("TYPING_JITTER", 0.2)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8000"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		AdminRecipients:    getEnvList("ADMIN_RECIPIENTS"),
		IgnoredEvents:      getEnvList("IGNORED_EVENTS"),

		GatewayConfig: GatewayConfig{
			BaseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
			APIKey:         apiKey,
			Session:        getEnvWithDefault("BOT_SESSION", "default"),
			TimeoutSeconds: timeoutSeconds,
		},

		TypingConfig: TypingConfig{
			WPM:            wpm,
			MinSeconds:     minSeconds,
			MaxSeconds:     maxSeconds,
			JitterFraction: jitter,
		},

		AlertConfig: AlertConfig{
			SlackWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	if config.AlertConfig.IsConfigured() {
		log.Printf("✅ Slack error alerting configured")
	} else {
		log.Printf("⚠️ Slack error alerting not configured - alerts will be disabled")
	}

	if len(config.AdminRecipients) > 0 {
		log.Printf("✅ %d admin recipient(s) configured for status notifications", len(config.AdminRecipients))
	} else {
		log.Printf("⚠️ No admin recipients configured - status notifications will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
