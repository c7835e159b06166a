package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/middleware"
	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/session"
	"github.com/ukydev/motor-quotation/internal/wizard"
)

// WizardHandler serves the quotation wizard. The wizard state travels in the
// session token, which is reissued with every response; only submitted
// sessions are remembered server side.
type WizardHandler struct {
	sessions  *session.Service
	deps      wizard.Deps
	submitted *submissionLog
	log       *log.Entry
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(sessions *session.Service, deps wizard.Deps, entry *log.Entry) *WizardHandler {
	if entry == nil {
		entry = log.WithField("component", "wizard")
	}
	return &WizardHandler{
		sessions:  sessions,
		deps:      deps,
		submitted: newSubmissionLog(sessions.Expiry()),
		log:       entry,
	}
}

var errSubmissionPending = errors.New("submission already in progress")

// WizardResponse is returned by every wizard endpoint.
type WizardResponse struct {
	Token         string                      `json:"token"`
	State         wizard.State                `json:"state"`
	Lead          *models.LeadRecord          `json:"lead,omitempty"`
	Notifications *models.NotificationResults `json:"notifications,omitempty"`
}

// Start begins a new wizard session.
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusCreated, "", wizard.New(h.deps), nil)
}

// Get returns the current wizard state.
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, claims.ID, wiz, nil)
}

// UpdateForm merges the JSON body onto the current form.
func (h *WizardHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	claims, wiz, ok := h.load(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	form := wiz.Form()
	if err := json.Unmarshal(body, &form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := wiz.Update(form); err != nil {
		h.writeWizardError(w, err)
		return
	}
	h.respond(w, http.StatusOK, claims.ID, wiz, nil)
}

// Next advances to the following step.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	claims, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := wiz.Next(); err != nil {
		h.writeWizardError(w, err)
		return
	}
	h.respond(w, http.StatusOK, claims.ID, wiz, nil)
}

// Back returns to the previous step.
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	claims, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := wiz.Back(); err != nil {
		h.writeWizardError(w, err)
		return
	}
	h.respond(w, http.StatusOK, claims.ID, wiz, nil)
}

// Submit finalises the quotation and notifies the team and the customer.
// A session is submitted at most once; later attempts get 409.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	if wiz.Step() == wizard.StepConfirmation {
		h.writeWizardError(w, wizard.ErrFinalized)
		return
	}
	if !h.submitted.reserve(claims.ID) {
		h.writeWizardError(w, errSubmissionPending)
		return
	}

	sub, err := wiz.Submit(r.Context())
	if err != nil {
		h.submitted.release(claims.ID)
		h.writeWizardError(w, err)
		return
	}
	h.submitted.confirm(claims.ID, wiz.Snapshot())
	h.respond(w, http.StatusOK, claims.ID, wiz, sub)
}

func (h *WizardHandler) load(w http.ResponseWriter, r *http.Request) (*session.Claims, *wizard.Wizard, bool) {
	claims, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session token required")
		return nil, nil, false
	}
	snap := claims.Wizard
	confirmed, pending := h.submitted.lookup(claims.ID)
	if pending {
		h.writeWizardError(w, errSubmissionPending)
		return nil, nil, false
	}
	if confirmed != nil {
		// Tokens issued before submission resume at the confirmation.
		snap = *confirmed
	}

	wiz, err := wizard.Restore(snap, h.deps)
	if err != nil {
		h.log.WithError(err).Warn("Rejected wizard session")
		writeError(w, http.StatusUnauthorized, "Invalid session")
		return nil, nil, false
	}
	return claims, wiz, true
}

func (h *WizardHandler) respond(w http.ResponseWriter, status int, sessionID string, wiz *wizard.Wizard, sub *wizard.Submission) {
	token, err := h.sessions.Issue(sessionID, wiz.Snapshot())
	if err != nil {
		h.log.WithError(err).Error("Failed to issue session token")
		writeError(w, http.StatusInternalServerError, "Failed to issue session")
		return
	}

	resp := WizardResponse{Token: token, State: wiz.State()}
	if sub != nil {
		resp.Lead = &sub.Lead
		resp.Notifications = &sub.Notifications
	}
	w.Header().Set(middleware.SessionHeader, token)
	writeJSON(w, status, resp)
}

func (h *WizardHandler) writeWizardError(w http.ResponseWriter, err error) {
	var incomplete *wizard.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Step:    int(incomplete.Step),
			Missing: incomplete.Missing,
		})
	case errors.Is(err, errSubmissionPending),
		errors.Is(err, wizard.ErrFinalized),
		errors.Is(err, wizard.ErrNotAtSummary),
		errors.Is(err, wizard.ErrSubmitToLeave):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.WithError(err).Error("Wizard operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
