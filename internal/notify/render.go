package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ukydev/motor-quotation/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	textTemplates = texttemplate.Must(
		texttemplate.New("text").Funcs(texttemplate.FuncMap{"money": FormatPKR}).ParseFS(templateFS, "templates/*.txt.tmpl"),
	)
	htmlTemplates = htmltemplate.Must(
		htmltemplate.New("html").Funcs(htmltemplate.FuncMap{"money": FormatPKR}).ParseFS(templateFS, "templates/*.html.tmpl"),
	)
)

// FormatPKR formats an amount in rupees with thousands separators,
// e.g. "PKR 1,000,000".
func FormatPKR(amount int64) string {
	return "PKR " + message.NewPrinter(language.English).Sprintf("%d", amount)
}

// leadView is the data passed to every template.
type leadView struct {
	models.LeadRecord
	Year int
}

// Renderer turns lead records into notification messages.
type Renderer struct {
	now func() time.Time
}

// NewRenderer returns a renderer. A nil clock means time.Now.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

// TeamEmail renders the internal lead alert addressed to the team mailbox.
func (r *Renderer) TeamEmail(lead models.LeadRecord, to string) (Message, error) {
	now := r.now()
	msg := newMessage(ChannelEmail, to, lead.ReferenceNumber, now)
	msg.Subject = "New Motor Insurance Lead - " + lead.ReferenceNumber

	var err error
	view := leadView{LeadRecord: lead, Year: now.Year()}
	if msg.Text, err = renderText("team_email.txt.tmpl", view); err != nil {
		return Message{}, err
	}
	if msg.HTML, err = renderHTML("team_email.html.tmpl", view); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// CustomerEmail renders the confirmation sent to the customer's own address.
func (r *Renderer) CustomerEmail(lead models.LeadRecord) (Message, error) {
	now := r.now()
	msg := newMessage(ChannelEmail, lead.CustomerDetails.Email, lead.ReferenceNumber, now)
	msg.Subject = "Your Motor Insurance Quotation - " + lead.ReferenceNumber

	var err error
	view := leadView{LeadRecord: lead, Year: now.Year()}
	if msg.Text, err = renderText("customer_email.txt.tmpl", view); err != nil {
		return Message{}, err
	}
	if msg.HTML, err = renderHTML("customer_email.html.tmpl", view); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// WhatsApp renders the short team alert.
func (r *Renderer) WhatsApp(lead models.LeadRecord, to string) (Message, error) {
	now := r.now()
	msg := newMessage(ChannelWhatsApp, to, lead.ReferenceNumber, now)

	var err error
	if msg.Text, err = renderText("whatsapp.txt.tmpl", leadView{LeadRecord: lead, Year: now.Year()}); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func renderText(name string, view leadView) (string, error) {
	var buf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func renderHTML(name string, view leadView) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
