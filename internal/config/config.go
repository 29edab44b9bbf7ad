package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// SMTPHostが空なら注文通知メールは送らない
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	OrderNotifyTo string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		OrderNotifyTo: os.Getenv("ORDER_NOTIFY_TO"),
	}

	port, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	if cfg.SMTPHost != "" {
		if cfg.MailFrom == "" {
			return Config{}, fmt.Errorf("MAIL_FROM is required when SMTP_HOST is set")
		}
		if cfg.OrderNotifyTo == "" {
			return Config{}, fmt.Errorf("ORDER_NOTIFY_TO is required when SMTP_HOST is set")
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
