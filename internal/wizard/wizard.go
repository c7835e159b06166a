// Package wizard implements the six-step quotation wizard: vehicle details,
// customer info, coverage, add-ons, quotation summary and confirmation.
//
// A Wizard is rebuilt from a Snapshot on every request and every transition
// re-validates the whole form, so the state carried between requests is never
// trusted to have been built in order.
package wizard

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/logging"
	"github.com/ukydev/motor-quotation/internal/models"
)

// Pricer computes quotations.
type Pricer interface {
	Calculate(in models.QuotationInput) models.QuotationResult
}

// ReferenceGenerator issues lead reference numbers.
type ReferenceGenerator interface {
	Generate() string
}

// LeadBuilder turns a validated submission into a lead record.
type LeadBuilder interface {
	Create(draft models.LeadDraft) models.LeadRecord
}

// Notifier dispatches the notifications for a new lead.
type Notifier interface {
	DispatchAll(ctx context.Context, lead models.LeadRecord) models.NotificationResults
}

// Deps are the collaborators a wizard calls on. They are shared between
// requests and must be safe for concurrent use.
type Deps struct {
	Pricer     Pricer
	References ReferenceGenerator
	Leads      LeadBuilder
	Notifier   Notifier
	Now        func() time.Time
	Log        *log.Entry
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) logger() *log.Entry {
	if d.Log == nil {
		return log.WithField("component", "wizard")
	}
	return d.Log
}

// Snapshot is the serialisable wizard state.
type Snapshot struct {
	Step      Step                    `json:"step"`
	Form      Form                    `json:"form"`
	Quotation *models.QuotationResult `json:"quotation,omitempty"`
	Lead      *models.LeadRecord      `json:"lead,omitempty"`
}

// State is the wizard as presented to clients.
type State struct {
	Snapshot
	StepName   string   `json:"stepName"`
	CanAdvance bool     `json:"canAdvance"`
	CanSubmit  bool     `json:"canSubmit"`
	Missing    []string `json:"missing,omitempty"`
}

// Submission is the outcome of a successful Submit.
type Submission struct {
	Lead          models.LeadRecord          `json:"lead"`
	Notifications models.NotificationResults `json:"notifications"`
}

// Wizard holds one customer's progress through the quotation steps.
type Wizard struct {
	step      Step
	form      Form
	quotation *models.QuotationResult
	lead      *models.LeadRecord
	deps      Deps
}

// New starts a wizard at the vehicle details step.
func New(deps Deps) *Wizard {
	return &Wizard{
		step: StepVehicleDetails,
		form: newForm(deps.now()),
		deps: deps,
	}
}

// Restore rebuilds a wizard from a snapshot.
func Restore(snap Snapshot, deps Deps) (*Wizard, error) {
	if !snap.Step.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, int(snap.Step))
	}
	if snap.Step == StepConfirmation && snap.Lead == nil {
		return nil, fmt.Errorf("%w: confirmation without a lead", ErrInvalidStep)
	}

	w := &Wizard{step: snap.Step, form: snap.Form, deps: deps}
	w.form.normalize()
	switch w.step {
	case StepQuotationSummary:
		w.price()
	case StepConfirmation:
		lead := *snap.Lead
		w.lead = &lead
		if snap.Quotation != nil {
			q := *snap.Quotation
			w.quotation = &q
		}
	}
	return w, nil
}

// Snapshot returns a copy of the current state.
func (w *Wizard) Snapshot() Snapshot {
	snap := Snapshot{Step: w.step, Form: w.form}
	if w.quotation != nil {
		q := *w.quotation
		snap.Quotation = &q
	}
	if w.lead != nil {
		lead := *w.lead
		snap.Lead = &lead
	}
	return snap
}

// State returns the snapshot along with the guard status of the current step.
func (w *Wizard) State() State {
	return State{
		Snapshot:   w.Snapshot(),
		StepName:   w.step.String(),
		CanAdvance: w.CanAdvance(),
		CanSubmit:  w.CanSubmit(),
		Missing:    w.MissingFields(),
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Form() Form { return w.form }

// CanAdvance reports whether Next would move on from the current step.
// It is always false on the summary and confirmation steps.
func (w *Wizard) CanAdvance() bool {
	if w.step >= StepQuotationSummary {
		return false
	}
	return w.firstIncomplete(w.step) == nil
}

// CanSubmit reports whether Submit would be accepted.
func (w *Wizard) CanSubmit() bool {
	return w.step == StepQuotationSummary && w.quotation != nil && w.firstIncomplete(StepAddOns) == nil
}

// MissingFields lists the fields the current step still needs.
func (w *Wizard) MissingFields() []string {
	return w.form.missingFields(w.step, w.deps.now())
}

// Next moves to the following step. Every step up to and including the
// current one must be complete. Entering the summary prices the form.
func (w *Wizard) Next() error {
	switch w.step {
	case StepConfirmation:
		return ErrFinalized
	case StepQuotationSummary:
		return ErrSubmitToLeave
	}
	if err := w.firstIncomplete(w.step); err != nil {
		return err
	}

	w.step++
	if w.step == StepQuotationSummary {
		w.price()
	}
	w.deps.logger().WithField("step", w.step.String()).Debug("Wizard advanced")
	return nil
}

// Back returns to the previous step. It is a no-op on the first step and
// fails once the wizard has been submitted.
func (w *Wizard) Back() error {
	if w.step == StepConfirmation {
		return ErrFinalized
	}
	if w.step == StepQuotationSummary {
		w.quotation = nil
	}
	if w.step > StepVehicleDetails {
		w.step--
	}
	return nil
}

// Update replaces the form. Choosing a different make clears the model
// unless a model was supplied with it. On the summary step the quotation
// is recomputed.
func (w *Wizard) Update(f Form) error {
	if w.step == StepConfirmation {
		return ErrFinalized
	}
	f.normalize()
	if f.Make != w.form.Make && f.Model == w.form.Model {
		f.Model = ""
	}
	w.form = f
	if w.step == StepQuotationSummary {
		w.price()
	}
	return nil
}

// Submit finalises the quotation: it issues a reference number, builds the
// lead and dispatches its notifications. Notification failures do not fail
// the submission. Once the lead is built, cancelling ctx no longer stops
// delivery; each notification is bounded only by the notifier's own timeout.
func (w *Wizard) Submit(ctx context.Context) (*Submission, error) {
	if w.step == StepConfirmation {
		return nil, ErrFinalized
	}
	if w.step != StepQuotationSummary || w.quotation == nil {
		return nil, ErrNotAtSummary
	}
	if err := w.firstIncomplete(StepAddOns); err != nil {
		return nil, err
	}

	lead := w.deps.Leads.Create(models.LeadDraft{
		ReferenceNumber: w.deps.References.Generate(),
		VehicleDetails:  w.form.vehicleDetails(),
		CustomerDetails: w.form.customerDetails(),
		CoverageType:    w.form.CoverageType,
		AddOns:          w.form.addOns(),
		Quotation:       *w.quotation,
	})
	results := w.deps.Notifier.DispatchAll(context.WithoutCancel(ctx), lead)

	w.lead = &lead
	w.step = StepConfirmation

	w.deps.logger().WithFields(log.Fields{
		"reference_number": lead.ReferenceNumber,
		"customer":         logging.Fingerprint(lead.CustomerDetails.Mobile),
		"team_notified":    results.Team,
	}).Info("Quotation submitted")

	return &Submission{Lead: lead, Notifications: results}, nil
}

// firstIncomplete checks steps 1..last in order and reports the first one
// with missing fields.
func (w *Wizard) firstIncomplete(last Step) *IncompleteError {
	now := w.deps.now()
	for s := StepVehicleDetails; s <= last && s <= StepAddOns; s++ {
		if missing := w.form.missingFields(s, now); len(missing) > 0 {
			return &IncompleteError{Step: s, Missing: missing}
		}
	}
	return nil
}

func (w *Wizard) price() {
	q := w.deps.Pricer.Calculate(w.form.quotationInput())
	w.quotation = &q
}
