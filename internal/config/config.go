package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	MonobankToken  string
	MonobankAPIURL string
	FetchRetries   int

	TelegramToken  string
	TelegramChatID string
	TelegramAPIURL string

	HistoryPath      string
	CronSpec         string
	RunOnStart       bool
	HistoryChartDays int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	ReportEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		MonobankToken:  getEnv("MONOBANK_TOKEN", ""),
		MonobankAPIURL: getEnv("MONOBANK_API_URL", "https://api.monobank.ua"),
		FetchRetries:   getEnvInt("FETCH_RETRIES", 3),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		HistoryPath:      getEnv("HISTORY_PATH", "./data/history.json"),
		CronSpec:         getEnv("CRON_SPEC", "0 9 * * *"),
		RunOnStart:       getEnv("RUN_ON_START", "false") == "true",
		HistoryChartDays: getEnvInt("HISTORY_CHART_DAYS", 30),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		ReportEmail:  getEnv("REPORT_EMAIL", ""),
	}

	if cfg.MonobankToken == "" {
		return nil, fmt.Errorf("MONOBANK_TOKEN is required")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.TelegramChatID == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if cfg.FetchRetries < 1 {
		cfg.FetchRetries = 1
	}

	return cfg, nil
}

// EmailEnabled reports whether the optional SMTP report channel is configured
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.ReportEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}
