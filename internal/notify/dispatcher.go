package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/logging"
	"github.com/ukydev/motor-quotation/internal/models"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// Recipients are the internal team addresses.
type Recipients struct {
	TeamEmail    string
	TeamWhatsApp string
}

// Dispatcher sends the notifications for a lead. Every delivery is bounded by
// its own timeout, and a failed or panicking delivery is reported as false
// without affecting the others.
type Dispatcher struct {
	email      Sender
	whatsapp   Sender
	recipients Recipients
	timeout    time.Duration
	renderer   *Renderer
	log        *log.Entry
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

func WithLogger(entry *log.Entry) Option {
	return func(d *Dispatcher) { d.log = entry }
}

func WithRenderer(r *Renderer) Option {
	return func(d *Dispatcher) { d.renderer = r }
}

// NewDispatcher creates a dispatcher delivering email through email and
// WhatsApp messages through whatsapp.
func NewDispatcher(email, whatsapp Sender, recipients Recipients, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		email:      email,
		whatsapp:   whatsapp,
		recipients: recipients,
		timeout:    DefaultTimeout,
		renderer:   NewRenderer(nil),
		log:        log.WithField("component", "notify"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NotifyTeam emails the lead to the team mailbox.
func (d *Dispatcher) NotifyTeam(ctx context.Context, lead models.LeadRecord) bool {
	return d.deliver(ctx, "team", lead, d.email, func() (Message, error) {
		return d.renderer.TeamEmail(lead, d.recipients.TeamEmail)
	})
}

// NotifyCustomer emails the confirmation to the customer. It returns false
// without attempting delivery when the customer gave no email address.
func (d *Dispatcher) NotifyCustomer(ctx context.Context, lead models.LeadRecord) bool {
	if lead.CustomerDetails.Email == "" {
		d.log.WithField("reference_number", lead.ReferenceNumber).
			Info("No email provided by customer, skipping customer email")
		return false
	}
	return d.deliver(ctx, "customer", lead, d.email, func() (Message, error) {
		return d.renderer.CustomerEmail(lead)
	})
}

// NotifyWhatsApp sends the short lead alert to the team WhatsApp number.
func (d *Dispatcher) NotifyWhatsApp(ctx context.Context, lead models.LeadRecord) bool {
	return d.deliver(ctx, "whatsapp", lead, d.whatsapp, func() (Message, error) {
		return d.renderer.WhatsApp(lead, d.recipients.TeamWhatsApp)
	})
}

// DispatchAll runs the three notifications concurrently and waits for each.
func (d *Dispatcher) DispatchAll(ctx context.Context, lead models.LeadRecord) models.NotificationResults {
	var (
		wg      sync.WaitGroup
		results models.NotificationResults
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		results.Team = d.NotifyTeam(ctx, lead)
	}()
	go func() {
		defer wg.Done()
		results.Customer = d.NotifyCustomer(ctx, lead)
	}()
	go func() {
		defer wg.Done()
		results.WhatsApp = d.NotifyWhatsApp(ctx, lead)
	}()
	wg.Wait()

	d.log.WithFields(log.Fields{
		"reference_number": lead.ReferenceNumber,
		"team":             results.Team,
		"customer":         results.Customer,
		"whatsapp":         results.WhatsApp,
	}).Info("Notifications dispatched")
	return results
}

func (d *Dispatcher) deliver(ctx context.Context, kind string, lead models.LeadRecord, sender Sender, render func() (Message, error)) (ok bool) {
	entry := d.log.WithFields(log.Fields{
		"notification":     kind,
		"reference_number": lead.ReferenceNumber,
	})
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("Notification failed")
			ok = false
		}
	}()

	if sender == nil {
		entry.Error("No sender configured")
		return false
	}
	msg, err := render()
	if err != nil {
		entry.WithError(err).Error("Failed to render notification")
		return false
	}
	entry = entry.WithFields(log.Fields{
		"message_id": msg.ID,
		"recipient":  logging.Fingerprint(msg.To),
	})

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Buffered so a sender that outlives the timeout can still finish.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("sender panic: %v", r)
			}
		}()
		done <- sender.Send(ctx, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			entry.WithError(err).Error("Failed to send notification")
			return false
		}
		entry.Info("Notification sent")
		return true
	case <-ctx.Done():
		entry.WithError(ctx.Err()).Warn("Notification timed out")
		return false
	}
}
