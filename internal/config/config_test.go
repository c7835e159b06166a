package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "EMAIL_PROVIDER", "WHATSAPP_PROVIDER", "TEAM_EMAIL", "SMTP_PORT", "NOTIFY_TIMEOUT", "KAFKA_BROKERS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ProviderLog, cfg.Notify.EmailProvider)
	assert.Equal(t, ProviderLog, cfg.Notify.WhatsAppProvider)
	assert.Equal(t, "motor-team@insurancecompany.com", cfg.Notify.TeamEmail)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "noreply@insurancecompany.com", cfg.SMTP.From)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Session.Expiry)
	assert.Nil(t, cfg.Kafka.Brokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_PROVIDER", "KAFKA")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, ProviderKafka, cfg.Notify.EmailProvider)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			RateLimit: RateLimitConfig{Requests: 20, WindowSeconds: 60},
			Notify:    NotifyConfig{EmailProvider: ProviderLog, WhatsAppProvider: ProviderLog},
		}
	}

	t.Run("log providers", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("non-positive rate limit", func(t *testing.T) {
		cases := map[string]func(*Config){
			"zero requests":     func(c *Config) { c.RateLimit.Requests = 0 },
			"negative requests": func(c *Config) { c.RateLimit.Requests = -5 },
			"zero window":       func(c *Config) { c.RateLimit.WindowSeconds = 0 },
			"negative window":   func(c *Config) { c.RateLimit.WindowSeconds = -1 },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				cfg := base()
				mutate(cfg)
				assert.ErrorIs(t, cfg.Validate(), ErrInvalidSetting)
			})
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.Notify.EmailProvider = "carrier-pigeon"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)
	})

	t.Run("smtp is email only", func(t *testing.T) {
		cfg := base()
		cfg.Notify.WhatsAppProvider = ProviderSMTP
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)
	})

	t.Run("mqtt is whatsapp only", func(t *testing.T) {
		cfg := base()
		cfg.Notify.EmailProvider = ProviderMQTT
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)
	})

	t.Run("missing settings", func(t *testing.T) {
		cases := map[string]func(*Config){
			"api email":    func(c *Config) { c.Notify.EmailProvider = ProviderAPI },
			"api whatsapp": func(c *Config) { c.Notify.WhatsAppProvider = ProviderAPI },
			"kafka":        func(c *Config) { c.Notify.EmailProvider = ProviderKafka },
			"amqp":         func(c *Config) { c.Notify.WhatsAppProvider = ProviderAMQP },
			"mqtt":         func(c *Config) { c.Notify.WhatsAppProvider = ProviderMQTT },
			"mongo":        func(c *Config) { c.Notify.EmailProvider = ProviderMongo },
			"smtp host":    func(c *Config) { c.Notify.EmailProvider = ProviderSMTP },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				cfg := base()
				mutate(cfg)
				assert.ErrorIs(t, cfg.Validate(), ErrMissingSetting)
			})
		}
	})

	t.Run("configured providers", func(t *testing.T) {
		cfg := base()
		cfg.Notify.EmailProvider = ProviderMongo
		cfg.Mongo.URI = "mongodb://localhost:27017"
		cfg.Notify.WhatsAppProvider = ProviderMQTT
		cfg.MQTT.Broker = "tcp://localhost:1883"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoad_RejectsZeroRateLimit(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("WHATSAPP_PROVIDER", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidSetting)
}
