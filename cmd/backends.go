package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/broker"
	"github.com/ukydev/motor-quotation/internal/config"
	"github.com/ukydev/motor-quotation/internal/db"
	"github.com/ukydev/motor-quotation/internal/handlers"
	"github.com/ukydev/motor-quotation/internal/logging"
	"github.com/ukydev/motor-quotation/internal/notify"
)

// backends are the delivery senders selected by configuration.
type backends struct {
	email    notify.Sender
	whatsapp notify.Sender
	outbox   handlers.PendingCounter
	closers  []func() error
}

func newBackends(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backends, error) {
	b := &backends{}

	email, err := b.sender(ctx, cfg, logger, cfg.Notify.EmailProvider, notify.ChannelEmail)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("email provider %s: %w", cfg.Notify.EmailProvider, err)
	}
	whatsapp, err := b.sender(ctx, cfg, logger, cfg.Notify.WhatsAppProvider, notify.ChannelWhatsApp)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("whatsapp provider %s: %w", cfg.Notify.WhatsAppProvider, err)
	}
	b.email, b.whatsapp = email, whatsapp
	return b, nil
}

func (b *backends) sender(ctx context.Context, cfg *config.Config, logger *log.Logger, provider string, channel notify.Channel) (notify.Sender, error) {
	isEmail := channel == notify.ChannelEmail

	switch provider {
	case config.ProviderLog:
		return notify.NewLogSender(logging.Component(logger, "notify."+string(channel))), nil

	case config.ProviderSMTP:
		return notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}), nil

	case config.ProviderAPI:
		url := cfg.API.WhatsAppURL
		if isEmail {
			url = cfg.API.EmailURL
		}
		return notify.NewHTTPSender(url, cfg.API.Key), nil

	case config.ProviderKafka:
		topic := cfg.Kafka.WhatsAppTopic
		if isEmail {
			topic = cfg.Kafka.EmailTopic
		}
		p := broker.NewKafkaPublisher(cfg.Kafka.Brokers, topic)
		b.closers = append(b.closers, p.Close)
		return notify.NewBrokerSender(p), nil

	case config.ProviderAMQP:
		queue := cfg.AMQP.WhatsAppQueue
		if isEmail {
			queue = cfg.AMQP.EmailQueue
		}
		p, err := broker.NewAMQPPublisher(cfg.AMQP.URL, queue)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, p.Close)
		return notify.NewBrokerSender(p), nil

	case config.ProviderMQTT:
		p, err := broker.NewMQTTPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.WhatsAppTopic, cfg.Notify.Timeout)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, p.Close)
		return notify.NewBrokerSender(p), nil

	case config.ProviderMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error {
			return client.Disconnect(context.Background())
		})
		coll := &db.MongoCollection{
			Collection: client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.OutboxCollection),
		}
		b.outbox = coll
		return notify.NewBrokerSender(db.NewMongoOutbox(coll)), nil
	}

	return nil, config.ErrUnknownProvider
}

func (b *backends) close() {
	for _, c := range b.closers {
		_ = c()
	}
}
