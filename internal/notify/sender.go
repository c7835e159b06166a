package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/logging"
)

// Sender delivers a rendered message over one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. It is the
// development default for both channels.
type LogSender struct {
	log *log.Entry
}

func NewLogSender(entry *log.Entry) *LogSender {
	if entry == nil {
		entry = log.WithField("component", "notify")
	}
	return &LogSender{log: entry}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry := s.log.WithFields(log.Fields{
		"provider":         "log",
		"message_id":       msg.ID,
		"channel":          string(msg.Channel),
		"recipient":        logging.Fingerprint(msg.To),
		"reference_number": msg.ReferenceNumber,
	})
	if msg.Subject != "" {
		entry = entry.WithField("subject", msg.Subject)
	}
	entry.Info("Notification logged")
	entry.Debug(msg.Text)
	return nil
}
