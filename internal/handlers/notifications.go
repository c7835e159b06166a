package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/reference"
)

// Notification types accepted by POST /notifications.
const (
	NotificationTypeTeam     = "team"
	NotificationTypeCustomer = "customer"
)

// LeadNotifier sends the email notifications for a lead.
type LeadNotifier interface {
	NotifyTeam(ctx context.Context, lead models.LeadRecord) bool
	NotifyCustomer(ctx context.Context, lead models.LeadRecord) bool
}

// NotificationHandler sends a single notification for an already created
// lead.
type NotificationHandler struct {
	notifier LeadNotifier
	log      *log.Entry
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifier LeadNotifier, entry *log.Entry) *NotificationHandler {
	if entry == nil {
		entry = log.WithField("component", "notifications")
	}
	return &NotificationHandler{notifier: notifier, log: entry}
}

type notificationRequest struct {
	Type     string             `json:"type"`
	Lead     *models.LeadRecord `json:"lead"`
	LeadData *models.LeadRecord `json:"leadData"`
}

type notificationResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Send handles POST /notifications
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.WithField("panic", rec).Error("Notification dispatch failed")
			writeJSON(w, http.StatusInternalServerError, notificationResponse{Error: "Failed to send notification"})
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, notificationResponse{Error: "Failed to read request body"})
		return
	}

	var req notificationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, notificationResponse{Error: "Invalid JSON"})
		return
	}

	lead := req.Lead
	if lead == nil {
		lead = req.LeadData
	}

	var notify func(context.Context, models.LeadRecord) bool
	switch req.Type {
	case NotificationTypeTeam:
		notify = h.notifier.NotifyTeam
	case NotificationTypeCustomer:
		notify = h.notifier.NotifyCustomer
	default:
		writeJSON(w, http.StatusBadRequest, notificationResponse{Error: "Invalid notification type"})
		return
	}
	if lead == nil {
		writeJSON(w, http.StatusBadRequest, notificationResponse{Error: "Missing lead"})
		return
	}
	// The reference becomes a broker key and MQTT topic level.
	if !reference.Valid(lead.ReferenceNumber) {
		writeJSON(w, http.StatusBadRequest, notificationResponse{Error: "Invalid reference number"})
		return
	}

	ok := notify(context.WithoutCancel(r.Context()), *lead)
	h.log.WithFields(log.Fields{
		"type":             req.Type,
		"reference_number": lead.ReferenceNumber,
		"success":          ok,
	}).Info("Notification requested")
	writeJSON(w, http.StatusOK, notificationResponse{Success: ok})
}
