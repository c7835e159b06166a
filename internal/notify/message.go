// Package notify renders lead notifications and delivers them to the team
// and the customer over email and WhatsApp.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Channel identifies the delivery medium of a message.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Message is a fully rendered notification ready for a Sender.
type Message struct {
	ID              string    `json:"id"`
	Channel         Channel   `json:"channel"`
	To              string    `json:"to"`
	Subject         string    `json:"subject,omitempty"`
	Text            string    `json:"text"`
	HTML            string    `json:"html,omitempty"`
	ReferenceNumber string    `json:"referenceNumber"`
	CreatedAt       time.Time `json:"createdAt"`
}

func newMessage(channel Channel, to, reference string, now time.Time) Message {
	return Message{
		ID:              uuid.NewString(),
		Channel:         channel,
		To:              to,
		ReferenceNumber: reference,
		CreatedAt:       now.UTC(),
	}
}
