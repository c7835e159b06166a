// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Delivery providers for the email and WhatsApp channels.
const (
	ProviderLog   = "log"
	ProviderSMTP  = "smtp"
	ProviderAPI   = "api"
	ProviderKafka = "kafka"
	ProviderAMQP  = "amqp"
	ProviderMQTT  = "mqtt"
	ProviderMongo = "mongo"
)

var (
	ErrUnknownProvider = errors.New("unknown notification provider")
	ErrMissingSetting  = errors.New("missing required setting")
	ErrInvalidSetting  = errors.New("invalid setting")
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Notify    NotifyConfig
	SMTP      SMTPConfig
	API       APIConfig
	Kafka     KafkaConfig
	AMQP      AMQPConfig
	MQTT      MQTTConfig
	Mongo     MongoConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// SessionConfig controls the signed wizard session tokens.
type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

// NotifyConfig selects the delivery provider per channel and the team recipients.
type NotifyConfig struct {
	EmailProvider    string
	WhatsAppProvider string
	TeamEmail        string
	TeamWhatsApp     string
	Timeout          time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// APIConfig points at a third-party HTTP delivery API.
type APIConfig struct {
	EmailURL    string
	WhatsAppURL string
	Key         string
}

type KafkaConfig struct {
	Brokers       []string
	EmailTopic    string
	WhatsAppTopic string
}

type AMQPConfig struct {
	URL           string
	EmailQueue    string
	WhatsAppQueue string
}

type MQTTConfig struct {
	Broker        string
	ClientID      string
	WhatsAppTopic string
}

type MongoConfig struct {
	URI              string
	Database         string
	OutboxCollection string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			Expiry: getEnvDuration("SESSION_EXPIRY", 2*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvInt("RATE_LIMIT_REQUESTS", 20),
			WindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Notify: NotifyConfig{
			EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderLog)),
			WhatsAppProvider: strings.ToLower(getEnv("WHATSAPP_PROVIDER", ProviderLog)),
			TeamEmail:        getEnv("TEAM_EMAIL", "motor-team@insurancecompany.com"),
			TeamWhatsApp:     getEnv("TEAM_WHATSAPP", "+92XXXXXXXXXX"),
			Timeout:          getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@insurancecompany.com"),
		},
		API: APIConfig{
			EmailURL:    getEnv("EMAIL_API_URL", ""),
			WhatsAppURL: getEnv("WHATSAPP_API_URL", ""),
			Key:         getEnv("NOTIFY_API_KEY", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			EmailTopic:    getEnv("KAFKA_EMAIL_TOPIC", "notifications-email"),
			WhatsAppTopic: getEnv("KAFKA_WHATSAPP_TOPIC", "notifications-whatsapp"),
		},
		AMQP: AMQPConfig{
			URL:           getEnv("RABBITMQ_URL", ""),
			EmailQueue:    getEnv("RABBITMQ_EMAIL_QUEUE", "email_jobs"),
			WhatsAppQueue: getEnv("RABBITMQ_WHATSAPP_QUEUE", "whatsapp_jobs"),
		},
		MQTT: MQTTConfig{
			Broker:        getEnv("MQTT_BROKER", ""),
			ClientID:      getEnv("MQTT_CLIENT_ID", "motor-quotation"),
			WhatsAppTopic: getEnv("MQTT_WHATSAPP_TOPIC", "notifications/whatsapp"),
		},
		Mongo: MongoConfig{
			URI:              getEnv("MONGO_URI", ""),
			Database:         getEnv("MONGO_DB", "motor"),
			OutboxCollection: getEnv("MONGO_OUTBOX_COLLECTION", "notification_outbox"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the rate limit and that each channel's provider is
// supported and configured.
func (c *Config) Validate() error {
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS=%d must be positive: %w", c.RateLimit.Requests, ErrInvalidSetting)
	}
	if c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS=%d must be positive: %w", c.RateLimit.WindowSeconds, ErrInvalidSetting)
	}
	if err := c.validateProvider("EMAIL_PROVIDER", c.Notify.EmailProvider,
		ProviderLog, ProviderSMTP, ProviderAPI, ProviderKafka, ProviderAMQP, ProviderMongo); err != nil {
		return err
	}
	return c.validateProvider("WHATSAPP_PROVIDER", c.Notify.WhatsAppProvider,
		ProviderLog, ProviderAPI, ProviderKafka, ProviderAMQP, ProviderMQTT)
}

func (c *Config) validateProvider(key, provider string, allowed ...string) error {
	supported := false
	for _, a := range allowed {
		if provider == a {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%s=%q: %w", key, provider, ErrUnknownProvider)
	}

	var missing string
	switch provider {
	case ProviderSMTP:
		if c.SMTP.Host == "" {
			missing = "SMTP_HOST"
		}
	case ProviderAPI:
		if key == "EMAIL_PROVIDER" && c.API.EmailURL == "" {
			missing = "EMAIL_API_URL"
		}
		if key == "WHATSAPP_PROVIDER" && c.API.WhatsAppURL == "" {
			missing = "WHATSAPP_API_URL"
		}
	case ProviderKafka:
		if len(c.Kafka.Brokers) == 0 {
			missing = "KAFKA_BROKERS"
		}
	case ProviderAMQP:
		if c.AMQP.URL == "" {
			missing = "RABBITMQ_URL"
		}
	case ProviderMQTT:
		if c.MQTT.Broker == "" {
			missing = "MQTT_BROKER"
		}
	case ProviderMongo:
		if c.Mongo.URI == "" {
			missing = "MONGO_URI"
		}
	}
	if missing != "" {
		return fmt.Errorf("%s=%s requires %s: %w", key, provider, missing, ErrMissingSetting)
	}
	return nil
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
